// internal/handlers/store.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/spicekart/backoffice/internal/models"
	"github.com/spicekart/backoffice/internal/services"
	"github.com/spicekart/backoffice/internal/utils"
)

type StoreHandler struct {
	storeService *services.StoreService
}

func NewStoreHandler(storeService *services.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// storeFromContext returns the store resolved by the scoping middleware.
func storeFromContext(c *gin.Context) (*models.Store, bool) {
	if v, exists := c.Get("store"); exists {
		if store, ok := v.(*models.Store); ok {
			return store, true
		}
	}
	utils.InternalErrorResponse(c, "store scope missing")
	return nil, false
}

// GET /api/store
func (h *StoreHandler) GetStores(c *gin.Context) {
	stores, err := h.storeService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"stores": stores})
}

// GET /api/:storeId
func (h *StoreHandler) GetStore(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	utils.SuccessResponse(c, gin.H{"store": store})
}

// POST /api/store
func (h *StoreHandler) CreateStore(c *gin.Context) {
	var req services.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	store, err := h.storeService.Create(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"store": store})
}

// PATCH /api/:storeId
func (h *StoreHandler) UpdateStore(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	var req services.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	updated, err := h.storeService.Update(store.ID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"store": updated})
}

// DELETE /api/:storeId
func (h *StoreHandler) DeleteStore(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	if err := h.storeService.DeleteBySlug(store.Slug); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Store deleted"})
}
