// internal/models/client.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a storefront customer. Verified flips to true only after a
// successful OTP verification.
type Client struct {
	BaseModel
	Name     string `json:"name" gorm:"size:255;not null"`
	Email    string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone    string `json:"phone" gorm:"uniqueIndex;size:20;not null"`
	Verified bool   `json:"isVerified" gorm:"column:is_verified;default:false"`

	// Relationships
	Addresses []Address `json:"addresses,omitempty" gorm:"foreignKey:ClientID"`
	Orders    []Order   `json:"orders,omitempty" gorm:"foreignKey:ClientID"`
	Reviews   []Review  `json:"reviews,omitempty" gorm:"foreignKey:ClientID"`
}

// Otp is a single-use login code. A row is deleted after a successful
// verification or superseded when a newer code is issued for the client.
type Otp struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ClientID  uuid.UUID `json:"client_id" gorm:"type:uuid;not null;index"`
	Code      string    `json:"otp" gorm:"column:otp;size:12;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (o *Otp) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type Address struct {
	BaseModel
	Label      AddressLabel `json:"label" gorm:"type:varchar(20);default:'OTHER'"`
	Line1      string       `json:"line1" gorm:"size:255;not null"`
	Line2      string       `json:"line2" gorm:"size:255"`
	City       string       `json:"city" gorm:"size:100"`
	State      string       `json:"state" gorm:"size:100"`
	PostalCode string       `json:"postal_code" gorm:"size:20"`
	IsDefault  bool         `json:"isDefault" gorm:"default:false"`
	ClientID   uuid.UUID    `json:"client_id" gorm:"type:uuid;not null;index"`
}

type Review struct {
	BaseModel
	Rating       int        `json:"rating" gorm:"not null"`
	Comment      string     `json:"comment" gorm:"type:text"`
	ProductID    *uuid.UUID `json:"product_id" gorm:"type:uuid;index"`
	SubproductID *uuid.UUID `json:"subproduct_id" gorm:"type:uuid;index"`
	ClientID     uuid.UUID  `json:"client_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Client Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}
