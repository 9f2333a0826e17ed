// internal/services/store_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/models"
)

// StoreService is the store directory: it resolves external slugs to
// internal store records. Every store-scoped operation resolves first.
type StoreService struct {
	db      *gorm.DB
	newSlug func() string
}

type CreateStoreRequest struct {
	Label string `json:"label" validate:"required,min=1,max=255"`
}

type UpdateStoreRequest struct {
	Label string `json:"label,omitempty" validate:"omitempty,min=1,max=255"`
}

func NewStoreService(db *gorm.DB) *StoreService {
	gen, err := nanoid.Standard(12)
	if err != nil {
		// only reachable with an invalid hardcoded length
		panic(err)
	}
	return &StoreService{db: db, newSlug: gen}
}

func (s *StoreService) Resolve(slug string) (*models.Store, error) {
	var store models.Store
	if err := s.db.Where("value = ?", slug).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &store, nil
}

func (s *StoreService) List() ([]models.Store, error) {
	var stores []models.Store
	if err := s.db.Order("created_at asc").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch stores: %w", err)
	}
	return stores, nil
}

func (s *StoreService) Create(req *CreateStoreRequest) (*models.Store, error) {
	store := &models.Store{
		Label: req.Label,
		Slug:  s.newSlug(),
	}

	if err := s.db.Create(store).Error; err != nil {
		if isUniqueViolation(err) {
			// nanoid collision at 12 chars is vanishingly rare; retry once
			store.Slug = s.newSlug()
			if err := s.db.Create(store).Error; err != nil {
				return nil, fmt.Errorf("failed to create store: %w", err)
			}
			return store, nil
		}
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return store, nil
}

func (s *StoreService) Update(id uuid.UUID, req *UpdateStoreRequest) (*models.Store, error) {
	var store models.Store
	if err := s.db.First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// The slug is immutable after creation; only the label may change.
	updates := make(map[string]interface{})
	if req.Label != "" {
		updates["label"] = req.Label
	}

	if len(updates) > 0 {
		if err := s.db.Model(&store).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update store: %w", err)
		}
	}

	return &store, nil
}

func (s *StoreService) DeleteBySlug(slug string) error {
	store, err := s.Resolve(slug)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.Store{}, "id = ?", store.ID).Error; err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("store has related records: %w", ErrConflict)
		}
		return fmt.Errorf("failed to delete store: %w", err)
	}

	return nil
}
