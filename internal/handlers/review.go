// internal/handlers/review.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/spicekart/backoffice/internal/services"
	"github.com/spicekart/backoffice/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GET /api/:storeId/reviews
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	reviews, err := h.reviewService.List(store.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"reviews": reviews})
}

// DELETE /api/:storeId/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(store.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Review deleted"})
}
