// internal/models/catalog.go
package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Image struct {
	BaseModel
	URL       string    `json:"url" gorm:"type:text;not null"`
	Key       string    `json:"key" gorm:"size:255"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;index"`
	OwnerType string    `json:"owner_type" gorm:"size:32;index"`
}

type Category struct {
	BaseModel
	Name    string    `json:"name" gorm:"size:255;not null"`
	StoreID uuid.UUID `json:"store_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Images   []Image   `json:"image,omitempty" gorm:"polymorphic:Owner;polymorphicValue:category"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

type Subcategory struct {
	BaseModel
	Name    string    `json:"name" gorm:"size:255;not null"`
	StoreID uuid.UUID `json:"store_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Images   []Image   `json:"image,omitempty" gorm:"polymorphic:Owner;polymorphicValue:subcategory"`
	Products []Product `json:"products,omitempty" gorm:"many2many:product_subcategories"`
}

type Product struct {
	BaseModel
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int       `json:"stock" gorm:"default:0"`
	Discount    float64   `json:"discount" gorm:"type:decimal(5,2);default:0"`
	CategoryID  uuid.UUID `json:"category_id" gorm:"type:uuid;not null;index"`
	StoreID     uuid.UUID `json:"store_id" gorm:"type:uuid;not null;index"`

	// DiscountedPrice is derived on every fetch, never persisted.
	DiscountedPrice float64 `json:"discounted_price" gorm:"-"`

	// Relationships
	Category      Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Subcategories []Subcategory `json:"subcategories,omitempty" gorm:"many2many:product_subcategories"`
	Subproducts   []Subproduct  `json:"subproducts,omitempty" gorm:"foreignKey:ProductID"`
	Images        []Image       `json:"image,omitempty" gorm:"polymorphic:Owner;polymorphicValue:product"`
	Reviews       []Review      `json:"review,omitempty" gorm:"foreignKey:ProductID"`
}

// ComputeDiscountedPrice derives the effective price from the stored
// price and discount. It is recomputed on every fetch so a price or
// discount change can never leave a stale derived value behind.
func (p *Product) ComputeDiscountedPrice() float64 {
	if p.Discount > 0 {
		return p.Price - p.Price*p.Discount/100
	}
	return p.Price
}

func (p *Product) AfterFind(tx *gorm.DB) error {
	p.DiscountedPrice = p.ComputeDiscountedPrice()
	return nil
}

// TierPrice is one computed package-weight option of a subproduct.
type TierPrice struct {
	Value string  `json:"value"`
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

type TierPriceList []TierPrice

func (t TierPriceList) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

func (t *TierPriceList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
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
	return json.Unmarshal(bytes, t)
}

type Subproduct struct {
	BaseModel
	Name         string         `json:"name" gorm:"size:255;not null"`
	Stock        int            `json:"stock" gorm:"default:0"`
	PerUnitPrice float64        `json:"perunitprice" gorm:"type:decimal(10,2);not null"`
	Discount     float64        `json:"discount" gorm:"type:decimal(5,2);default:0"`
	Tiers        pq.StringArray `json:"tiers" gorm:"type:text[]"`
	Prices       TierPriceList  `json:"prices" gorm:"type:jsonb"`
	InStock      bool           `json:"inStock" gorm:"default:true"`
	Featured     bool           `json:"featured" gorm:"default:false"`
	ProductID    uuid.UUID      `json:"product_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Product Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Images  []Image  `json:"image,omitempty" gorm:"polymorphic:Owner;polymorphicValue:subproduct"`
	Reviews []Review `json:"review,omitempty" gorm:"foreignKey:SubproductID"`
}
