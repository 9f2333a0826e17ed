// internal/services/notification_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/events"
	"github.com/spicekart/backoffice/internal/metrics"
	"github.com/spicekart/backoffice/internal/models"
)

const publishTimeout = 5 * time.Second

// NotificationService persists store notifications and fans them out to
// subscribed dashboard sessions. The row is the system of record; the
// fan-out is fire-and-forget and never blocks the request that
// triggered it.
type NotificationService struct {
	db        *gorm.DB
	publisher events.Publisher
}

func NewNotificationService(db *gorm.DB, publisher events.Publisher) *NotificationService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &NotificationService{db: db, publisher: publisher}
}

func (s *NotificationService) List(storeID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.Where("store_id = ?", storeID).
		Order("created_at desc").
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) Create(storeID uuid.UUID, message string) (*models.Notification, error) {
	if message == "" {
		return nil, fmt.Errorf("message is required: %w", ErrValidation)
	}

	notification := &models.Notification{
		Message: message,
		StoreID: storeID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.publish(notification, events.EventNotificationCreated)
	return notification, nil
}

// MarkRead is idempotent: marking an already-read notification succeeds
// and republishes the read event so all sessions converge.
func (s *NotificationService) MarkRead(storeID, id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.Where("store_id = ?", storeID).
		First(&notification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("notification %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&notification).Update("read", true).Error; err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}
	notification.Read = true

	s.publish(&notification, events.EventNotificationRead)
	return &notification, nil
}

// Delete removes the row. No event is published; dashboards re-fetch or
// drop the entry locally.
func (s *NotificationService) Delete(storeID, id uuid.UUID) error {
	res := s.db.Where("store_id = ?", storeID).Delete(&models.Notification{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete notification: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *NotificationService) publish(n *models.Notification, event string) {
	evt := events.NotificationEvent{
		ID:        n.ID.String(),
		StoreID:   n.StoreID.String(),
		Message:   n.Message,
		Read:      n.Read,
		Event:     event,
		CreatedAt: n.CreatedAt,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := s.publisher.PublishNotification(ctx, evt); err != nil {
			metrics.NotificationPublishErrorsTotal.Inc()
			logrus.WithError(err).WithFields(logrus.Fields{
				"store_id":        evt.StoreID,
				"notification_id": evt.ID,
				"event":           event,
			}).Error("Failed to publish notification event")
			return
		}
		metrics.NotificationsPublishedTotal.WithLabelValues(event).Inc()
	}()
}
