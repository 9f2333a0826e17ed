// internal/models/order.go
package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
)

// OrderItem is a single enriched line of an order. Price and subtotal are
// computed server-side from the catalog at creation time; items are never
// mutated after the order is persisted.
type OrderItem struct {
	ProductID   uuid.UUID `json:"product_id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Subtotal    float64   `json:"subtotal"`
	Subcategory string    `json:"subcategory,omitempty"`
}

type OrderItemList []OrderItem

func (l OrderItemList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *OrderItemList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, l)
}

type Order struct {
	BaseModel
	Items     OrderItemList `json:"products" gorm:"type:jsonb;not null"`
	Amount    float64       `json:"amount" gorm:"type:decimal(10,2);not null"`
	Status    OrderStatus   `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`
	ClientID  uuid.UUID     `json:"client_id" gorm:"type:uuid;not null;index"`
	AddressID uuid.UUID     `json:"address_id" gorm:"type:uuid;not null"`
	StoreID   uuid.UUID     `json:"store_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Client  Client  `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Address Address `json:"address,omitempty" gorm:"foreignKey:AddressID"`
}
