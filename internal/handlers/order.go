// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/spicekart/backoffice/internal/services"
	"github.com/spicekart/backoffice/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GET /api/:storeId/order
func (h *OrderHandler) GetOrders(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	orders, err := h.orderService.List(store.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"orders": orders})
}

// GET /api/:storeId/order/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Get(store.ID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"order": order})
}

// POST /api/:storeId/order
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	order, err := h.orderService.Create(store.ID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"order": order})
}

// PATCH /api/:storeId/order/:id
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	order, err := h.orderService.Update(store.ID, id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"order": order})
}

// DELETE /api/:storeId/order/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.Delete(store.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Order deleted"})
}
