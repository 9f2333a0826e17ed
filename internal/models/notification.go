// internal/models/notification.go
package models

import "github.com/google/uuid"

// Notification is the durable record behind the real-time fan-out. The
// fan-out channel is a best-effort optimization; this row is the source
// of truth for the dashboard notification list.
type Notification struct {
	BaseModel
	Message string    `json:"message" gorm:"type:text;not null"`
	Read    bool      `json:"read" gorm:"default:false;index"`
	StoreID uuid.UUID `json:"store_id" gorm:"type:uuid;not null;index"`
}
