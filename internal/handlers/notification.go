// internal/handlers/notification.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/spicekart/backoffice/internal/services"
	"github.com/spicekart/backoffice/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GET /api/:storeId/notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	notifications, err := h.notificationService.List(store.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"notifications": notifications})
}

type createNotificationRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// POST /api/:storeId/notifications
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	notification, err := h.notificationService.Create(store.ID, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"notification": notification})
}

// PATCH /api/:storeId/notifications/:id/read
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkRead(store.ID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"notification": notification})
}

// DELETE /api/:storeId/notifications/:id
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.Delete(store.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Notification deleted"})
}
