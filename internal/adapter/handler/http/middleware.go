package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/ports"
)

const (
	authorizationHeaderKey  = "Authorization"
	authorizationType       = "bearer"
	authorizationPayloadKey = "authorization_payload"
)

// AuthMiddleware verifies the bearer token and stores its payload in the context.
func AuthMiddleware(tokenService ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeaderKey)
		if header == "" {
			newErrorResponse(c, http.StatusUnauthorized, "Authorization header is not provided")
			return
		}

		fields := strings.Fields(header)
		if len(fields) != 2 || strings.ToLower(fields[0]) != authorizationType {
			newErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		payload, err := tokenService.VerifyToken(fields[1])
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Set(authorizationPayloadKey, payload)
		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, exists := getAuthPayload(c, authorizationPayloadKey)
		if !exists {
			newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if !payload.IsAdmin() {
			newErrorResponse(c, http.StatusForbidden, "Access denied")
			return
		}
		c.Next()
	}
}

func getAuthPayload(c *gin.Context, key string) (*domain.TokenPayload, bool) {
	value, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	payload, ok := value.(*domain.TokenPayload)
	return payload, ok
}

// canAccess reports whether the caller owns the resource or is an admin.
func canAccess(payload *domain.TokenPayload, ownerID int64) bool {
	return payload.IsAdmin() || payload.UserID == ownerID
}
