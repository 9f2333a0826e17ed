// internal/services/review_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/models"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	db     *gorm.DB
	svc    *ReviewService
	store  *models.Store
	client *models.Client
}

func (s *ReviewServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	s.svc = NewReviewService(s.db)
	s.store = seedStore(s.T(), s.db)
	s.client, _ = seedClientWithAddress(s.T(), s.db)
}

func (s *ReviewServiceTestSuite) seedReview(productID, subproductID *uuid.UUID) *models.Review {
	review := &models.Review{
		Rating:       4,
		Comment:      "good",
		ProductID:    productID,
		SubproductID: subproductID,
		ClientID:     s.client.ID,
	}
	s.Require().NoError(s.db.Create(review).Error)
	return review
}

func (s *ReviewServiceTestSuite) TestListJoinsThroughCatalog() {
	_, product := seedCatalog(s.T(), s.db, s.store.ID)

	subproduct := &models.Subproduct{
		Name:         "Ground",
		PerUnitPrice: 10,
		Tiers:        []string{"1"},
		ProductID:    product.ID,
	}
	s.Require().NoError(s.db.Create(subproduct).Error)

	direct := s.seedReview(&product.ID, nil)
	viaSubproduct := s.seedReview(nil, &subproduct.ID)

	// a review on another store's catalog must not leak in
	otherStore := seedStore(s.T(), s.db)
	_, otherProduct := seedCatalog(s.T(), s.db, otherStore.ID)
	s.seedReview(&otherProduct.ID, nil)

	reviews, err := s.svc.List(s.store.ID)
	s.Require().NoError(err)
	s.Require().Len(reviews, 2)

	ids := map[uuid.UUID]bool{reviews[0].ID: true, reviews[1].ID: true}
	s.True(ids[direct.ID])
	s.True(ids[viaSubproduct.ID])
}

func (s *ReviewServiceTestSuite) TestListPreloadsClient() {
	_, product := seedCatalog(s.T(), s.db, s.store.ID)
	s.seedReview(&product.ID, nil)

	reviews, err := s.svc.List(s.store.ID)
	s.Require().NoError(err)
	s.Require().Len(reviews, 1)
	s.Equal(s.client.Name, reviews[0].Client.Name)
}

func (s *ReviewServiceTestSuite) TestDeleteScopedByStore() {
	_, product := seedCatalog(s.T(), s.db, s.store.ID)
	review := s.seedReview(&product.ID, nil)

	otherStore := seedStore(s.T(), s.db)
	s.Require().ErrorIs(s.svc.Delete(otherStore.ID, review.ID), ErrNotFound)

	s.Require().NoError(s.svc.Delete(s.store.ID, review.ID))
	s.Require().ErrorIs(s.svc.Delete(s.store.ID, review.ID), ErrNotFound)
}

func TestReviewServiceSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}
