// internal/handlers/subproduct.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/spicekart/backoffice/internal/services"
	"github.com/spicekart/backoffice/internal/utils"
)

type SubproductHandler struct {
	subproductService *services.SubproductService
}

func NewSubproductHandler(subproductService *services.SubproductService) *SubproductHandler {
	return &SubproductHandler{subproductService: subproductService}
}

// GET /api/:storeId/subproduct
func (h *SubproductHandler) GetSubproducts(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	subproducts, err := h.subproductService.List(store.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"subproducts": subproducts})
}

// GET /api/:storeId/subproduct/:id
func (h *SubproductHandler) GetSubproduct(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	subproduct, err := h.subproductService.Get(store.ID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"subproduct": subproduct})
}

// POST /api/:storeId/subproduct
func (h *SubproductHandler) CreateSubproduct(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	var req services.CreateSubproductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	subproduct, err := h.subproductService.Create(store.ID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"subproduct": subproduct})
}

// PATCH /api/:storeId/subproduct/:id
func (h *SubproductHandler) UpdateSubproduct(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateSubproductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	subproduct, err := h.subproductService.Update(store.ID, id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"subproduct": subproduct})
}

// DELETE /api/:storeId/subproduct/:id
func (h *SubproductHandler) DeleteSubproduct(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.subproductService.Delete(store.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Subproduct deleted"})
}
