// internal/services/notification_service_test.go
package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/events"
	"github.com/spicekart/backoffice/internal/models"
)

// capturePublisher records events for assertions; publishes happen on a
// background goroutine so access is guarded.
type capturePublisher struct {
	mtx    sync.Mutex
	events []events.NotificationEvent
}

func (p *capturePublisher) PublishNotification(ctx context.Context, event events.NotificationEvent) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) wait(t *testing.T, n int) []events.NotificationEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mtx.Lock()
		if len(p.events) >= n {
			out := append([]events.NotificationEvent(nil), p.events...)
			p.mtx.Unlock()
			return out
		}
		p.mtx.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d published events", n)
	return nil
}

type NotificationServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	publisher *capturePublisher
	svc       *NotificationService
	store     *models.Store
}

func (s *NotificationServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	s.publisher = &capturePublisher{}
	s.svc = NewNotificationService(s.db, s.publisher)
	s.store = seedStore(s.T(), s.db)
}

func (s *NotificationServiceTestSuite) TestCreatePersistsAndPublishes() {
	notification, err := s.svc.Create(s.store.ID, "New order for 42.00")
	s.Require().NoError(err)
	s.False(notification.Read)

	published := s.publisher.wait(s.T(), 1)
	s.Equal(events.EventNotificationCreated, published[0].Event)
	s.Equal(s.store.ID.String(), published[0].StoreID)
	s.Equal("New order for 42.00", published[0].Message)
}

func (s *NotificationServiceTestSuite) TestCreateRejectsEmptyMessage() {
	_, err := s.svc.Create(s.store.ID, "")
	s.Require().ErrorIs(err, ErrValidation)
}

func (s *NotificationServiceTestSuite) TestMarkReadIsIdempotent() {
	notification, err := s.svc.Create(s.store.ID, "hello")
	s.Require().NoError(err)

	first, err := s.svc.MarkRead(s.store.ID, notification.ID)
	s.Require().NoError(err)
	s.True(first.Read)

	second, err := s.svc.MarkRead(s.store.ID, notification.ID)
	s.Require().NoError(err)
	s.True(second.Read)

	// created + two read events
	published := s.publisher.wait(s.T(), 3)
	s.Equal(events.EventNotificationRead, published[1].Event)
	s.Equal(events.EventNotificationRead, published[2].Event)
}

func (s *NotificationServiceTestSuite) TestMarkReadScopedByStore() {
	notification, err := s.svc.Create(s.store.ID, "hello")
	s.Require().NoError(err)

	other := seedStore(s.T(), s.db)
	_, err = s.svc.MarkRead(other.ID, notification.ID)
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *NotificationServiceTestSuite) TestDelete() {
	notification, err := s.svc.Create(s.store.ID, "hello")
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(s.store.ID, notification.ID))
	s.Require().ErrorIs(s.svc.Delete(s.store.ID, notification.ID), ErrNotFound)
}

func TestNotificationServiceSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
