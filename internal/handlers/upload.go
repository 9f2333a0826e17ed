// internal/handlers/upload.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/spicekart/backoffice/internal/services"
	"github.com/spicekart/backoffice/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{storageService: storageService}
}

// POST /api/:storeId/uploads
//
// Accepts one or more files under the "images" form field and returns
// the stored URL and key for each. Files that fail validation are
// skipped and reported by name.
func (h *UploadHandler) UploadImages(c *gin.Context) {
	if _, ok := storeFromContext(c); !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No images uploaded", nil)
		return
	}

	options := services.ImageUploadOptions("catalog")

	var uploaded []services.UploadResult
	var rejected []string

	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			rejected = append(rejected, fileHeader.Filename)
			continue
		}

		result, err := h.storageService.UploadFile(file, fileHeader, options)
		file.Close()
		if err != nil {
			rejected = append(rejected, fileHeader.Filename)
			continue
		}

		uploaded = append(uploaded, *result)
	}

	if len(uploaded) == 0 {
		utils.BadRequestResponse(c, "No images could be stored", gin.H{"rejected": rejected})
		return
	}

	utils.SuccessResponse(c, gin.H{
		"images":   uploaded,
		"rejected": rejected,
	})
}

type deleteImagesRequest struct {
	Keys []string `json:"keys" validate:"required,min=1,dive,required"`
}

// DELETE /api/:storeId/uploads
//
// Removes stored objects by key. Used by the dashboard when an image is
// detached before its catalog entity is saved.
func (h *UploadHandler) DeleteImages(c *gin.Context) {
	if _, ok := storeFromContext(c); !ok {
		return
	}

	var req deleteImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.storageService.DeleteObjects(req.Keys...); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": req.Keys})
}
