// internal/services/order_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/models"
)

type OrderServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	svc     *OrderService
	store   *models.Store
	product *models.Product
	client  *models.Client
	address *models.Address
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	notifications := NewNotificationService(s.db, nil)
	s.svc = NewOrderService(s.db, notifications)

	s.store = seedStore(s.T(), s.db)
	_, s.product = seedCatalog(s.T(), s.db, s.store.ID)
	s.client, s.address = seedClientWithAddress(s.T(), s.db)
}

func (s *OrderServiceTestSuite) createRequest(quantity string) *CreateOrderRequest {
	return &CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ProductID: s.product.ID, Quantity: quantity},
		},
		ClientID:  s.client.ID,
		AddressID: s.address.ID,
	}
}

func (s *OrderServiceTestSuite) TestCreatePricesFromCatalog() {
	order, err := s.svc.Create(s.store.ID, s.createRequest("3"))
	s.Require().NoError(err)

	s.Require().Len(order.Items, 1)
	s.Equal(s.product.Price, order.Items[0].Price)
	s.Equal(3, order.Items[0].Quantity)
	s.InDelta(37.50, order.Items[0].Subtotal, 0.001)
	s.InDelta(37.50, order.Amount, 0.001)
	s.Equal(models.OrderStatusPending, order.Status)
}

func (s *OrderServiceTestSuite) TestCreateAmountIsSumOfSubtotals() {
	second := &models.Product{
		Name:       "Cardamom",
		Price:      30,
		Stock:      10,
		CategoryID: s.product.CategoryID,
		StoreID:    s.store.ID,
	}
	s.Require().NoError(s.db.Create(second).Error)

	req := &CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ProductID: s.product.ID, Quantity: "2"},
			{ProductID: second.ID, Quantity: "1"},
		},
		ClientID:  s.client.ID,
		AddressID: s.address.ID,
	}

	order, err := s.svc.Create(s.store.ID, req)
	s.Require().NoError(err)

	var sum float64
	for _, item := range order.Items {
		sum += item.Subtotal
	}
	s.InDelta(sum, order.Amount, 0.001)
	s.InDelta(55.0, order.Amount, 0.001)
}

func (s *OrderServiceTestSuite) TestCreateDecrementsStock() {
	_, err := s.svc.Create(s.store.ID, s.createRequest("4"))
	s.Require().NoError(err)

	var product models.Product
	s.Require().NoError(s.db.First(&product, "id = ?", s.product.ID).Error)
	s.Equal(96, product.Stock)
}

func (s *OrderServiceTestSuite) TestCreateInsufficientStock() {
	_, err := s.svc.Create(s.store.ID, s.createRequest("101"))
	s.Require().ErrorIs(err, ErrConflict)

	// nothing persisted, stock untouched
	var count int64
	s.db.Model(&models.Order{}).Count(&count)
	s.Zero(count)

	var product models.Product
	s.Require().NoError(s.db.First(&product, "id = ?", s.product.ID).Error)
	s.Equal(100, product.Stock)
}

func (s *OrderServiceTestSuite) TestCreateRollsBackOnMissingProduct() {
	req := &CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ProductID: s.product.ID, Quantity: "2"},
			{ProductID: uuid.New(), Quantity: "1"},
		},
		ClientID:  s.client.ID,
		AddressID: s.address.ID,
	}

	_, err := s.svc.Create(s.store.ID, req)
	s.Require().ErrorIs(err, ErrNotFound)

	var count int64
	s.db.Model(&models.Order{}).Count(&count)
	s.Zero(count)

	// the first line's decrement rolled back with the transaction
	var product models.Product
	s.Require().NoError(s.db.First(&product, "id = ?", s.product.ID).Error)
	s.Equal(100, product.Stock)
}

func (s *OrderServiceTestSuite) TestCreateRejectsBadQuantity() {
	for _, quantity := range []string{"0", "-1", "two", ""} {
		_, err := s.svc.Create(s.store.ID, s.createRequest(quantity))
		s.ErrorIs(err, ErrValidation, "quantity %q", quantity)
	}
}

func (s *OrderServiceTestSuite) TestCreateRejectsForeignAddress() {
	other, _ := seedClientWithAddress(s.T(), s.db)

	req := s.createRequest("1")
	req.ClientID = other.ID // address belongs to s.client

	_, err := s.svc.Create(s.store.ID, req)
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *OrderServiceTestSuite) TestCreateWritesNotification() {
	_, err := s.svc.Create(s.store.ID, s.createRequest("1"))
	s.Require().NoError(err)

	var notifications []models.Notification
	s.Require().NoError(s.db.Where("store_id = ?", s.store.ID).Find(&notifications).Error)
	s.Require().Len(notifications, 1)
	s.False(notifications[0].Read)
	s.Contains(notifications[0].Message, "New order")
}

func (s *OrderServiceTestSuite) TestCreateImmuneToCatalogRepricing() {
	order, err := s.svc.Create(s.store.ID, s.createRequest("2"))
	s.Require().NoError(err)

	// reprice the catalog after the order exists
	s.Require().NoError(s.db.Model(&models.Product{}).
		Where("id = ?", s.product.ID).
		Update("price", 99.99).Error)

	reloaded, err := s.svc.Get(s.store.ID, order.ID)
	s.Require().NoError(err)
	s.InDelta(25.0, reloaded.Amount, 0.001)
	s.Equal(12.50, reloaded.Items[0].Price)
}

func (s *OrderServiceTestSuite) TestUpdateStatusTransitions() {
	order, err := s.svc.Create(s.store.ID, s.createRequest("1"))
	s.Require().NoError(err)

	updated, err := s.svc.Update(s.store.ID, order.ID, &UpdateOrderRequest{Status: models.OrderStatusConfirmed})
	s.Require().NoError(err)
	s.Equal(models.OrderStatusConfirmed, updated.Status)

	updated, err = s.svc.Update(s.store.ID, order.ID, &UpdateOrderRequest{Status: models.OrderStatusDelivered})
	s.Require().NoError(err)
	s.Equal(models.OrderStatusDelivered, updated.Status)
}

func (s *OrderServiceTestSuite) TestUpdateRejectsExitFromTerminalStatus() {
	order, err := s.svc.Create(s.store.ID, s.createRequest("1"))
	s.Require().NoError(err)

	_, err = s.svc.Update(s.store.ID, order.ID, &UpdateOrderRequest{Status: models.OrderStatusCancelled})
	s.Require().NoError(err)

	_, err = s.svc.Update(s.store.ID, order.ID, &UpdateOrderRequest{Status: models.OrderStatusPending})
	s.Require().ErrorIs(err, ErrConflict)
}

func (s *OrderServiceTestSuite) TestUpdateRejectsUnknownStatus() {
	order, err := s.svc.Create(s.store.ID, s.createRequest("1"))
	s.Require().NoError(err)

	_, err = s.svc.Update(s.store.ID, order.ID, &UpdateOrderRequest{Status: "SHIPPED"})
	s.Require().ErrorIs(err, ErrValidation)
}

func (s *OrderServiceTestSuite) TestUpdateAddressMustBelongToClient() {
	order, err := s.svc.Create(s.store.ID, s.createRequest("1"))
	s.Require().NoError(err)

	_, foreign := seedClientWithAddress(s.T(), s.db)

	_, err = s.svc.Update(s.store.ID, order.ID, &UpdateOrderRequest{AddressID: &foreign.ID})
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *OrderServiceTestSuite) TestGetScopedByStore() {
	order, err := s.svc.Create(s.store.ID, s.createRequest("1"))
	s.Require().NoError(err)

	otherStore := seedStore(s.T(), s.db)
	_, err = s.svc.Get(otherStore.ID, order.ID)
	s.Require().ErrorIs(err, ErrNotFound)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
