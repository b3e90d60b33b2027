package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop/internal/core/domain"
)

type errorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Error message"`
}

type successResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"Success message"`
	Data    interface{} `json:"data,omitempty"`
}

func newErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, errorResponse{
		Success: false,
		Message: message,
	})
}

func newSuccessResponse(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, successResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// errorStatus maps a service error onto an HTTP status and a client-safe message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConstraint):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "Already exists"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, domain.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType, "Unsupported image type"
	case errors.Is(err, domain.ErrPhotoNormalization):
		return http.StatusUnprocessableEntity, "Photo was saved but could not be normalized"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func handleServiceError(c *gin.Context, err error) {
	code, message := errorStatus(err)
	newErrorResponse(c, code, message)
}
