// internal/middleware/store_scope.go
package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/spicekart/backoffice/internal/services"
	"github.com/spicekart/backoffice/internal/utils"
)

// StoreScope resolves the :storeId path segment, a public slug, to the
// store record and stashes it in the request context. Downstream
// handlers only ever see the internal store id.
func StoreScope(storeService *services.StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("storeId")
		if slug == "" {
			utils.BadRequestResponse(c, "Missing store identifier", nil)
			c.Abort()
			return
		}

		store, err := storeService.Resolve(slug)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				utils.NotFoundResponse(c, "Store not found")
			} else {
				logrus.WithError(err).WithField("slug", slug).Error("Failed to resolve store")
				utils.InternalErrorResponse(c, "")
			}
			c.Abort()
			return
		}

		c.Set("store", store)
		c.Next()
	}
}
