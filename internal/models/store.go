// internal/models/store.go
package models

// Store is a tenant. All catalog, order and notification data is scoped
// to exactly one store. Slug is the external URL-facing identifier and
// is generated server-side on creation; it never changes afterwards.
type Store struct {
	BaseModel
	Label string `json:"label" gorm:"size:255;not null"`
	Slug  string `json:"value" gorm:"column:value;uniqueIndex;size:32;not null"`

	// Relationships
	Categories    []Category     `json:"categories,omitempty" gorm:"foreignKey:StoreID"`
	Products      []Product      `json:"products,omitempty" gorm:"foreignKey:StoreID"`
	Orders        []Order        `json:"orders,omitempty" gorm:"foreignKey:StoreID"`
	Notifications []Notification `json:"notifications,omitempty" gorm:"foreignKey:StoreID"`
}
