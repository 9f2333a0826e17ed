// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/metrics"
	"github.com/spicekart/backoffice/internal/models"
)

type OrderService struct {
	db            *gorm.DB
	notifications *NotificationService
}

type CreateOrderItemRequest struct {
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	Subcategory string    `json:"subcategory,omitempty"`
	Quantity    string    `json:"quantity" validate:"required"`
}

type CreateOrderRequest struct {
	Items     []CreateOrderItemRequest `json:"products" validate:"required,min=1,dive"`
	ClientID  uuid.UUID                `json:"client_id" validate:"required"`
	AddressID uuid.UUID                `json:"address_id" validate:"required"`
}

type UpdateOrderRequest struct {
	Status    models.OrderStatus `json:"status,omitempty"`
	AddressID *uuid.UUID         `json:"address_id,omitempty"`
}

func NewOrderService(db *gorm.DB, notifications *NotificationService) *OrderService {
	return &OrderService{db: db, notifications: notifications}
}

func (s *OrderService) List(storeID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("Address").Preload("Client").
		Where("store_id = ?", storeID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) Get(storeID, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Address").Preload("Client").
		Where("store_id = ?", storeID).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// Create validates a cart submission and persists the order atomically.
// Every line is re-priced from the authoritative catalog; prices a
// client may claim are never read. A missing product or insufficient
// stock fails the whole operation and nothing is persisted.
func (s *OrderService) Create(storeID uuid.UUID, req *CreateOrderRequest) (*models.Order, error) {
	var client models.Client
	if err := s.db.First(&client, "id = ?", req.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client %s: %w", req.ClientID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var address models.Address
	if err := s.db.Where("client_id = ?", req.ClientID).First(&address, "id = ?", req.AddressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("address %s: %w", req.AddressID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	order := &models.Order{
		Status:    models.OrderStatusPending,
		ClientID:  req.ClientID,
		AddressID: req.AddressID,
		StoreID:   storeID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var amount float64
		items := make(models.OrderItemList, 0, len(req.Items))

		for _, line := range req.Items {
			quantity, err := strconv.Atoi(line.Quantity)
			if err != nil || quantity <= 0 {
				return fmt.Errorf("invalid quantity %q for product %s: %w", line.Quantity, line.ProductID, ErrValidation)
			}

			var product models.Product
			if err := tx.Where("store_id = ?", storeID).First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %s: %w", line.ProductID, ErrNotFound)
				}
				return fmt.Errorf("database error: %w", err)
			}

			// conditional decrement; refuses to oversell under
			// concurrent checkouts
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("insufficient stock for product %s: %w", product.ID, ErrConflict)
			}

			subtotal := product.Price * float64(quantity)
			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				Name:        product.Name,
				Price:       product.Price,
				Quantity:    quantity,
				Subtotal:    subtotal,
				Subcategory: line.Subcategory,
			})
			amount += subtotal
		}

		order.Items = items
		order.Amount = amount

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.WithLabelValues(storeID.String()).Inc()
	metrics.OrdersCreatedAmountTotal.WithLabelValues(storeID.String()).Add(order.Amount)

	// admins learn about new orders through the notification fan-out;
	// the order is already committed, so a failure here is logged only
	if s.notifications != nil {
		msg := fmt.Sprintf("New order for %.2f from %s", order.Amount, client.Name)
		if _, err := s.notifications.Create(storeID, msg); err != nil {
			logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to create order notification")
		}
	}

	return s.Get(storeID, order.ID)
}

// Update applies the status state machine and address changes. PENDING
// and CONFIRMED orders may move to any other status; DELIVERED and
// CANCELLED are terminal. Values outside the four-member enum are
// rejected. A replacement address must belong to the order's client.
func (s *OrderService) Update(storeID, id uuid.UUID, req *UpdateOrderRequest) (*models.Order, error) {
	order, err := s.Get(storeID, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("unknown order status %q: %w", req.Status, ErrValidation)
		}
		if order.Status.Terminal() && req.Status != order.Status {
			return nil, fmt.Errorf("order is %s and cannot change status: %w", order.Status, ErrConflict)
		}
		updates["status"] = req.Status
	}

	if req.AddressID != nil {
		var address models.Address
		if err := s.db.Where("client_id = ?", order.ClientID).First(&address, "id = ?", *req.AddressID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("address %s: %w", *req.AddressID, ErrNotFound)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		updates["address_id"] = *req.AddressID
	}

	if len(updates) > 0 {
		if err := s.db.Model(order).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
		if req.Status != "" && req.Status != order.Status {
			metrics.OrderStatusTransitionsTotal.WithLabelValues(string(req.Status)).Inc()
		}
	}

	return s.Get(storeID, id)
}

func (s *OrderService) Delete(storeID, id uuid.UUID) error {
	order, err := s.Get(storeID, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.Order{}, "id = ?", order.ID).Error; err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("cannot delete order due to related records: %w", ErrConflict)
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return nil
}
