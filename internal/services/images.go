// internal/services/images.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/models"
)

type ImageInput struct {
	URL string `json:"url" validate:"required"`
	Key string `json:"key"`
}

// ObjectStorage is the pluggable object-storage boundary. Catalog
// services only need to drop objects whose rows were replaced.
type ObjectStorage interface {
	DeleteObjects(keys ...string) error
}

// attachImages inserts image rows for an owner in one batch so the
// surrounding transaction keeps the write atomic.
func attachImages(tx *gorm.DB, ownerType string, ownerID uuid.UUID, images []ImageInput) error {
	if len(images) == 0 {
		return nil
	}

	rows := make([]models.Image, 0, len(images))
	for _, img := range images {
		rows = append(rows, models.Image{
			URL:       img.URL,
			Key:       img.Key,
			OwnerID:   ownerID,
			OwnerType: ownerType,
		})
	}

	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to create image rows: %w", err)
	}
	return nil
}

// replaceImages swaps an owner's image set and reports the storage keys
// of the removed rows so the caller can drop the objects after commit.
func replaceImages(tx *gorm.DB, ownerType string, ownerID uuid.UUID, images []ImageInput) ([]string, error) {
	var existing []models.Image
	if err := tx.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).Find(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch image rows: %w", err)
	}

	var removedKeys []string
	for _, img := range existing {
		if img.Key != "" {
			removedKeys = append(removedKeys, img.Key)
		}
	}

	if err := tx.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).Delete(&models.Image{}).Error; err != nil {
		return nil, fmt.Errorf("failed to delete image rows: %w", err)
	}

	if err := attachImages(tx, ownerType, ownerID, images); err != nil {
		return nil, err
	}

	return removedKeys, nil
}

// dropObjects removes replaced objects from storage. The rows are gone
// either way; a storage failure surfaces as a dependency error rather
// than being swallowed.
func dropObjects(storage ObjectStorage, keys []string) error {
	if storage == nil || len(keys) == 0 {
		return nil
	}
	if err := storage.DeleteObjects(keys...); err != nil {
		return fmt.Errorf("failed to delete stored objects: %w: %v", ErrDependency, err)
	}
	return nil
}
