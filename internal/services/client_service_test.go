// internal/services/client_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/models"
)

type ClientServiceTestSuite struct {
	suite.Suite
	db     *gorm.DB
	svc    *ClientService
	client *models.Client
}

func (s *ClientServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	s.svc = NewClientService(s.db)

	s.client, _ = seedClientWithAddress(s.T(), s.db)
}

func (s *ClientServiceTestSuite) TestUpdateProfile() {
	name := "Asha Nair"
	updated, err := s.svc.Update(s.client.ID, &UpdateClientRequest{Name: &name})
	s.Require().NoError(err)
	s.Equal("Asha Nair", updated.Name)
}

func (s *ClientServiceTestSuite) TestUpdateDuplicateEmail() {
	other, _ := seedClientWithAddress(s.T(), s.db)

	_, err := s.svc.Update(s.client.ID, &UpdateClientRequest{Email: &other.Email})
	s.Require().ErrorIs(err, ErrConflict)
}

func (s *ClientServiceTestSuite) TestHomeAddressBecomesDefault() {
	created, err := s.svc.CreateAddress(s.client.ID, &AddressRequest{
		Label: "HOME",
		Line1: "12 Spice Lane",
		City:  "Kochi",
	})
	s.Require().NoError(err)
	s.True(created.IsDefault)

	// at most one default per client
	addresses, err := s.svc.ListAddresses(s.client.ID)
	s.Require().NoError(err)

	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			s.Equal(created.ID, a.ID)
		}
	}
	s.Equal(1, defaults)
}

func (s *ClientServiceTestSuite) TestCreateAddressDefaultsLabelToOther() {
	created, err := s.svc.CreateAddress(s.client.ID, &AddressRequest{
		Line1: "88 Market Road",
	})
	s.Require().NoError(err)
	s.Equal(models.AddressLabelOther, created.Label)
	s.False(created.IsDefault)
}

func (s *ClientServiceTestSuite) TestUpdateAddressPromotesDefault() {
	extra, err := s.svc.CreateAddress(s.client.ID, &AddressRequest{
		Label: "WORK",
		Line1: "4 Office Park",
	})
	s.Require().NoError(err)
	s.False(extra.IsDefault)

	_, err = s.svc.UpdateAddress(s.client.ID, extra.ID, &AddressRequest{
		Label:     "WORK",
		Line1:     "4 Office Park",
		IsDefault: true,
	})
	s.Require().NoError(err)

	addresses, err := s.svc.ListAddresses(s.client.ID)
	s.Require().NoError(err)
	for _, a := range addresses {
		s.Equal(a.ID == extra.ID, a.IsDefault)
	}
}

func (s *ClientServiceTestSuite) TestAddressScopedByClient() {
	other, otherAddress := seedClientWithAddress(s.T(), s.db)

	_, err := s.svc.GetAddress(s.client.ID, otherAddress.ID)
	s.Require().ErrorIs(err, ErrNotFound)

	err = s.svc.DeleteAddress(s.client.ID, otherAddress.ID)
	s.Require().ErrorIs(err, ErrNotFound)

	_, err = s.svc.GetAddress(other.ID, otherAddress.ID)
	s.Require().NoError(err)
}

func (s *ClientServiceTestSuite) TestDeleteAddressBlockedByOrder() {
	store := seedStore(s.T(), s.db)
	category, product := seedCatalog(s.T(), s.db, store.ID)
	_ = category

	addresses, err := s.svc.ListAddresses(s.client.ID)
	s.Require().NoError(err)
	s.Require().NotEmpty(addresses)
	address := addresses[0]

	orderSvc := NewOrderService(s.db, NewNotificationService(s.db, nil))
	_, err = orderSvc.Create(store.ID, &CreateOrderRequest{
		ClientID:  s.client.ID,
		AddressID: address.ID,
		Items:     []CreateOrderItemRequest{{ProductID: product.ID, Quantity: "1"}},
	})
	s.Require().NoError(err)

	err = s.svc.DeleteAddress(s.client.ID, address.ID)
	s.Require().ErrorIs(err, ErrConflict)
}

func (s *ClientServiceTestSuite) TestReviewNeedsTarget() {
	_, err := s.svc.CreateReview(s.client.ID, &ReviewRequest{Rating: 4})
	s.Require().ErrorIs(err, ErrValidation)
}

func (s *ClientServiceTestSuite) TestReviewRoundTrip() {
	store := seedStore(s.T(), s.db)
	_, product := seedCatalog(s.T(), s.db, store.ID)

	review, err := s.svc.CreateReview(s.client.ID, &ReviewRequest{
		Rating:    5,
		Comment:   "fresh and fragrant",
		ProductID: &product.ID,
	})
	s.Require().NoError(err)

	reviews, err := s.svc.ListReviews(s.client.ID)
	s.Require().NoError(err)
	s.Require().Len(reviews, 1)
	s.Equal(review.ID, reviews[0].ID)

	s.Require().NoError(s.svc.DeleteReview(s.client.ID, review.ID))
	s.Require().ErrorIs(s.svc.DeleteReview(s.client.ID, review.ID), ErrNotFound)
}

func (s *ClientServiceTestSuite) TestReviewUnknownProduct() {
	missing := uuid.New()
	_, err := s.svc.CreateReview(s.client.ID, &ReviewRequest{
		Rating:    3,
		ProductID: &missing,
	})
	s.Require().ErrorIs(err, ErrValidation)
}

func TestClientServiceSuite(t *testing.T) {
	suite.Run(t, new(ClientServiceTestSuite))
}
