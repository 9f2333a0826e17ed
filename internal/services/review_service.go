// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/models"
)

// ReviewService is the moderation surface: reviews reach a store only
// through the reviewed product or subproduct, so every lookup joins
// through the catalog.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) storeScoped(storeID uuid.UUID) *gorm.DB {
	return s.db.Model(&models.Review{}).
		Joins("LEFT JOIN products ON products.id = reviews.product_id").
		Joins("LEFT JOIN subproducts ON subproducts.id = reviews.subproduct_id").
		Joins("LEFT JOIN products parents ON parents.id = subproducts.product_id").
		Where("products.store_id = ? OR parents.store_id = ?", storeID, storeID)
}

func (s *ReviewService) List(storeID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.storeScoped(storeID).
		Preload("Client").
		Order("reviews.created_at desc").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

// Delete removes a review by id, refusing ids whose reviewed item
// belongs to another store.
func (s *ReviewService) Delete(storeID, id uuid.UUID) error {
	var review models.Review
	if err := s.storeScoped(storeID).
		Where("reviews.id = ?", id).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("review %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&models.Review{}, "id = ?", review.ID).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
