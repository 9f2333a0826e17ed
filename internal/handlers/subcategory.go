// internal/handlers/subcategory.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/spicekart/backoffice/internal/services"
	"github.com/spicekart/backoffice/internal/utils"
)

type SubcategoryHandler struct {
	subcategoryService *services.SubcategoryService
}

func NewSubcategoryHandler(subcategoryService *services.SubcategoryService) *SubcategoryHandler {
	return &SubcategoryHandler{subcategoryService: subcategoryService}
}

// GET /api/:storeId/subcategory
func (h *SubcategoryHandler) GetSubcategories(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	subcategories, err := h.subcategoryService.List(store.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"subcategories": subcategories})
}

// GET /api/:storeId/subcategory/:id
func (h *SubcategoryHandler) GetSubcategory(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	subcategory, err := h.subcategoryService.Get(store.ID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"subcategory": subcategory})
}

// POST /api/:storeId/subcategory
func (h *SubcategoryHandler) CreateSubcategory(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	var req services.CreateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	subcategory, err := h.subcategoryService.Create(store.ID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"subcategory": subcategory})
}

// PATCH /api/:storeId/subcategory/:id
func (h *SubcategoryHandler) UpdateSubcategory(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	subcategory, err := h.subcategoryService.Update(store.ID, id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"subcategory": subcategory})
}

// DELETE /api/:storeId/subcategory/:id
func (h *SubcategoryHandler) DeleteSubcategory(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.subcategoryService.Delete(store.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Subcategory deleted"})
}
