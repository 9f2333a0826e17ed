// internal/events/publisher.go
package events

import (
	"context"
	"time"
)

// NotificationEvent is pushed to subscribed dashboard sessions when a
// store notification changes. Delivery is at-most-once and best-effort;
// the notification row remains the durable source of truth.
type NotificationEvent struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Event     string    `json:"event"` // "created" or "read"
	CreatedAt time.Time `json:"created_at"`
}

const (
	EventNotificationCreated = "created"
	EventNotificationRead    = "read"
)

type Publisher interface {
	PublishNotification(ctx context.Context, event NotificationEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured and
// in tests.
type NopPublisher struct{}

func (NopPublisher) PublishNotification(ctx context.Context, event NotificationEvent) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
