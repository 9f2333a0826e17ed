// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spicekart/backoffice/internal/services"
	"github.com/spicekart/backoffice/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// queryAlias reads a query parameter that the dashboard sends in camel
// case while older clients still use the snake-case form.
func queryAlias(c *gin.Context, name, alias string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return c.Query(alias)
}

// GET /api/:storeId/product
func (h *ProductHandler) GetProducts(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	searchParams := services.ProductSearchParams{
		PaginationParams: params,
	}

	if categoryIDStr := queryAlias(c, "categoryId", "category_id"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			searchParams.CategoryID = &categoryID
		}
	}

	if subcategoryIDStr := queryAlias(c, "subcategoryId", "subcategory_id"); subcategoryIDStr != "" {
		if subcategoryID, err := uuid.Parse(subcategoryIDStr); err == nil {
			searchParams.SubcategoryID = &subcategoryID
		}
	}

	if priceMinStr := queryAlias(c, "minPrice", "price_min"); priceMinStr != "" {
		if priceMin, err := strconv.ParseFloat(priceMinStr, 64); err == nil {
			searchParams.MinPrice = &priceMin
		}
	}

	if priceMaxStr := queryAlias(c, "maxPrice", "price_max"); priceMaxStr != "" {
		if priceMax, err := strconv.ParseFloat(priceMaxStr, 64); err == nil {
			searchParams.MaxPrice = &priceMax
		}
	}

	products, total, err := h.productService.Search(store.ID, searchParams)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /api/:storeId/product/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.Get(store.ID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"product": product})
}

// POST /api/:storeId/product
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.Create(store.ID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"product": product})
}

// PATCH /api/:storeId/product/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	product, err := h.productService.Update(store.ID, id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"product": product})
}

// DELETE /api/:storeId/product/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(store.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Product deleted"})
}
