// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/database"
	"github.com/spicekart/backoffice/internal/models"
)

type CategoryService struct {
	db      *gorm.DB
	storage ObjectStorage
}

type CreateCategoryRequest struct {
	Name   string       `json:"name" validate:"required,min=1,max=255"`
	Images []ImageInput `json:"image,omitempty" validate:"omitempty,dive"`
}

type UpdateCategoryRequest struct {
	Name   string       `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Images []ImageInput `json:"image,omitempty" validate:"omitempty,dive"`
}

func NewCategoryService(db *gorm.DB, storage ObjectStorage) *CategoryService {
	return &CategoryService{db: db, storage: storage}
}

func (s *CategoryService) List(storeID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Preload("Images").
		Where("store_id = ?", storeID).
		Order("created_at desc").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(storeID, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Images").
		Where("store_id = ?", storeID).
		First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

// Create persists a category; the image set is optional.
func (s *CategoryService) Create(storeID uuid.UUID, req *CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:    req.Name,
		StoreID: storeID,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(category).Error; err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		return attachImages(tx, "category", category.ID, req.Images)
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Images").First(category, "id = ?", category.ID)
	return category, nil
}

func (s *CategoryService) Update(storeID, id uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.Get(storeID, id)
	if err != nil {
		return nil, err
	}

	var removedKeys []string
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if req.Name != "" {
			if err := tx.Model(category).Update("name", req.Name).Error; err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}
		}
		if req.Images != nil {
			removedKeys, err = replaceImages(tx, "category", category.ID, req.Images)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Images").First(category, "id = ?", category.ID)

	if err := dropObjects(s.storage, removedKeys); err != nil {
		return category, err
	}
	return category, nil
}

// Delete is destructive. A delete blocked by products still referencing
// the category is reported as a conflict, not a generic failure.
func (s *CategoryService) Delete(storeID, id uuid.UUID) error {
	category, err := s.Get(storeID, id)
	if err != nil {
		return err
	}

	var removedKeys []string
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		removedKeys, err = replaceImages(tx, "category", category.ID, nil)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.Category{}, "id = ?", category.ID).Error; err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("category has related records: %w", ErrConflict)
			}
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return dropObjects(s.storage, removedKeys)
}
