// internal/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/spicekart/backoffice/internal/services"
	"github.com/spicekart/backoffice/internal/utils"
)

// respondServiceError maps service errors onto HTTP responses. Anything
// not matching a known category is logged and reported as a 500 without
// leaking internals.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrUnauthorized):
		utils.UnauthorizedResponse(c, err.Error())
	case errors.Is(err, services.ErrVerification):
		utils.ErrorResponse(c, http.StatusBadRequest, "VERIFICATION_FAILED", err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrRateLimited):
		utils.TooManyRequestsResponse(c, err.Error())
	case errors.Is(err, services.ErrDependency):
		utils.DependencyFailureResponse(c, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Unhandled service error")
		utils.InternalErrorResponse(c, "")
	}
}

// parseUUIDParam reads a uuid path parameter, replying 400 on garbage.
// The bool reports whether the handler should continue.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
