// internal/handlers/category.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/spicekart/backoffice/internal/services"
	"github.com/spicekart/backoffice/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GET /api/:storeId/category
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	categories, err := h.categoryService.List(store.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"categories": categories})
}

// GET /api/:storeId/category/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.Get(store.ID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"category": category})
}

// POST /api/:storeId/category
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	category, err := h.categoryService.Create(store.ID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"category": category})
}

// PATCH /api/:storeId/category/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	category, err := h.categoryService.Update(store.ID, id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"category": category})
}

// DELETE /api/:storeId/category/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(store.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Category deleted"})
}
