package http

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/motoshop/motoshop/internal/adapter/logger"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewJWTTokenService("secret", time.Hour, logger.NewWithWriter(io.Discard, "error"))

	token, issued, err := tokens.CreateToken(&domain.User{ID: 42, IsStaff: true})
	require.NoError(t, err)

	payload, err := tokens.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, payload.ID)
	assert.Equal(t, int64(42), payload.UserID)
	assert.Equal(t, domain.Admin, payload.Role)
}

func TestVerifyTokenRejects(t *testing.T) {
	log := logger.NewWithWriter(io.Discard, "error")
	tokens := NewJWTTokenService("secret", time.Hour, log)
	valid, _, err := tokens.CreateToken(&domain.User{ID: 1})
	require.NoError(t, err)

	expired, _, err := NewJWTTokenService("secret", -time.Minute, log).CreateToken(&domain.User{ID: 1})
	require.NoError(t, err)

	otherKey, _, err := NewJWTTokenService("other", time.Hour, log).CreateToken(&domain.User{ID: 1})
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id": "00000000-0000-0000-0000-000000000000", "user_id": 1, "role": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":   expired,
		"other key": otherKey,
		"none alg":  noneAlg,
		"garbage":   "not-a-token",
		"tampered":  valid + "x",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.VerifyToken(token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv := newTestServer(t)
	user := &domain.User{ID: 1, Username: "rider"}
	srv.users.users = []*domain.User{user}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer abc", http.StatusUnauthorized},
		{"valid token", "Bearer " + srv.tokenFor(t, user), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			srv.engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	srv := newTestServer(t)
	customer := &domain.User{ID: 1, Username: "rider"}
	staff := &domain.User{ID: 2, Username: "boss", IsStaff: true}

	w := srv.do(t, http.MethodGet, "/admin", srv.tokenFor(t, customer), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodGet, "/admin", srv.tokenFor(t, staff), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/admin/nothing", srv.tokenFor(t, staff), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminMiddlewareWithoutPayload(t *testing.T) {
	router := gin.New()
	router.GET("/", AdminMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrValidation, http.StatusBadRequest},
		{domain.ErrConstraint, http.StatusBadRequest},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUnsupportedMedia, http.StatusUnsupportedMediaType},
		{domain.ErrPhotoNormalization, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		code, _ := errorStatus(tt.err)
		assert.Equal(t, tt.want, code, tt.err.Error())
	}
}
