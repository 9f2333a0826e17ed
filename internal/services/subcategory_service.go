// internal/services/subcategory_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/database"
	"github.com/spicekart/backoffice/internal/models"
)

type SubcategoryService struct {
	db      *gorm.DB
	storage ObjectStorage
}

type CreateSubcategoryRequest struct {
	Name   string       `json:"name" validate:"required,min=1,max=255"`
	Images []ImageInput `json:"image,omitempty" validate:"omitempty,dive"`
}

type UpdateSubcategoryRequest struct {
	Name   string       `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Images []ImageInput `json:"image,omitempty" validate:"omitempty,dive"`
}

func NewSubcategoryService(db *gorm.DB, storage ObjectStorage) *SubcategoryService {
	return &SubcategoryService{db: db, storage: storage}
}

func (s *SubcategoryService) List(storeID uuid.UUID) ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	if err := s.db.Preload("Images").
		Where("store_id = ?", storeID).
		Order("created_at desc").
		Find(&subcategories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch subcategories: %w", err)
	}
	return subcategories, nil
}

func (s *SubcategoryService) Get(storeID, id uuid.UUID) (*models.Subcategory, error) {
	var subcategory models.Subcategory
	if err := s.db.Preload("Images").
		Where("store_id = ?", storeID).
		First(&subcategory, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("subcategory %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &subcategory, nil
}

func (s *SubcategoryService) Create(storeID uuid.UUID, req *CreateSubcategoryRequest) (*models.Subcategory, error) {
	subcategory := &models.Subcategory{
		Name:    req.Name,
		StoreID: storeID,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(subcategory).Error; err != nil {
			return fmt.Errorf("failed to create subcategory: %w", err)
		}
		return attachImages(tx, "subcategory", subcategory.ID, req.Images)
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Images").First(subcategory, "id = ?", subcategory.ID)
	return subcategory, nil
}

func (s *SubcategoryService) Update(storeID, id uuid.UUID, req *UpdateSubcategoryRequest) (*models.Subcategory, error) {
	subcategory, err := s.Get(storeID, id)
	if err != nil {
		return nil, err
	}

	var removedKeys []string
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if req.Name != "" {
			if err := tx.Model(subcategory).Update("name", req.Name).Error; err != nil {
				return fmt.Errorf("failed to update subcategory: %w", err)
			}
		}
		if req.Images != nil {
			removedKeys, err = replaceImages(tx, "subcategory", subcategory.ID, req.Images)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Images").First(subcategory, "id = ?", subcategory.ID)

	if err := dropObjects(s.storage, removedKeys); err != nil {
		return subcategory, err
	}
	return subcategory, nil
}

func (s *SubcategoryService) Delete(storeID, id uuid.UUID) error {
	subcategory, err := s.Get(storeID, id)
	if err != nil {
		return err
	}

	var removedKeys []string
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		removedKeys, err = replaceImages(tx, "subcategory", subcategory.ID, nil)
		if err != nil {
			return err
		}
		// detach product associations before removing the row
		if err := tx.Model(subcategory).Association("Products").Clear(); err != nil {
			return fmt.Errorf("failed to clear product associations: %w", err)
		}
		if err := tx.Delete(&models.Subcategory{}, "id = ?", subcategory.ID).Error; err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("subcategory has related records: %w", ErrConflict)
			}
			return fmt.Errorf("failed to delete subcategory: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return dropObjects(s.storage, removedKeys)
}
