// internal/handlers/client.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spicekart/backoffice/internal/services"
	"github.com/spicekart/backoffice/internal/utils"
)

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// clientFromContext returns the client id set by the client auth
// middleware.
func clientFromContext(c *gin.Context) (uuid.UUID, bool) {
	if v, exists := c.Get("client_id"); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id, true
		}
	}
	utils.UnauthorizedResponse(c, "")
	return uuid.Nil, false
}

// GET /api/client/:clientId
func (h *ClientHandler) GetClient(c *gin.Context) {
	clientID, ok := clientFromContext(c)
	if !ok {
		return
	}

	client, err := h.clientService.Get(clientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"client": client})
}

// PATCH /api/client/:clientId
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	clientID, ok := clientFromContext(c)
	if !ok {
		return
	}

	var req services.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	client, err := h.clientService.Update(clientID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"client": client})
}

// GET /api/client/:clientId/address
func (h *ClientHandler) GetAddresses(c *gin.Context) {
	clientID, ok := clientFromContext(c)
	if !ok {
		return
	}

	addresses, err := h.clientService.ListAddresses(clientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"addresses": addresses})
}

// POST /api/client/:clientId/address
func (h *ClientHandler) CreateAddress(c *gin.Context) {
	clientID, ok := clientFromContext(c)
	if !ok {
		return
	}

	var req services.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	address, err := h.clientService.CreateAddress(clientID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"address": address})
}

// GET /api/client/:clientId/address/:id
func (h *ClientHandler) GetAddress(c *gin.Context) {
	clientID, ok := clientFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	address, err := h.clientService.GetAddress(clientID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"address": address})
}

// PATCH /api/client/:clientId/address/:id
func (h *ClientHandler) UpdateAddress(c *gin.Context) {
	clientID, ok := clientFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	address, err := h.clientService.UpdateAddress(clientID, id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"address": address})
}

// DELETE /api/client/:clientId/address/:id
func (h *ClientHandler) DeleteAddress(c *gin.Context) {
	clientID, ok := clientFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.DeleteAddress(clientID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Address deleted"})
}

// GET /api/client/:clientId/review
func (h *ClientHandler) GetReviews(c *gin.Context) {
	clientID, ok := clientFromContext(c)
	if !ok {
		return
	}

	reviews, err := h.clientService.ListReviews(clientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"reviews": reviews})
}

// POST /api/client/:clientId/review
func (h *ClientHandler) CreateReview(c *gin.Context) {
	clientID, ok := clientFromContext(c)
	if !ok {
		return
	}

	var req services.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	review, err := h.clientService.CreateReview(clientID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"review": review})
}

// DELETE /api/client/:clientId/review/:id
func (h *ClientHandler) DeleteReview(c *gin.Context) {
	clientID, ok := clientFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.DeleteReview(clientID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Review deleted"})
}
