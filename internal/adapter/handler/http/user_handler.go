package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/ports"
	"github.com/motoshop/motoshop/internal/core/services"
	"github.com/samber/lo"
)

type UserHandler struct {
	userService  *services.UserService
	tokenService ports.TokenService
	logger       ports.LoggerPort
	metrics      ports.MetricsPort
}

type RegisterRequest struct {
	Username  string `json:"username" binding:"required" example:"rider"`
	Password  string `json:"password" binding:"required" example:"s3cret-pass"`
	Email     string `json:"email,omitempty" example:"rider@example.com"`
	FirstName string `json:"first_name,omitempty" example:"Valentino"`
	LastName  string `json:"last_name,omitempty" example:"Rossi"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"rider"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required" example:"n3w-s3cret"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty" example:"rider@example.com"`
	FirstName *string `json:"first_name,omitempty" example:"Valentino"`
	LastName  *string `json:"last_name,omitempty" example:"Rossi"`
}

type UserResponse struct {
	ID         int64     `json:"id" example:"1"`
	Username   string    `json:"username" example:"rider"`
	Email      string    `json:"email,omitempty" example:"rider@example.com"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	IsStaff    bool      `json:"is_staff"`
	DateJoined time.Time `json:"date_joined"`
	Photo      string    `json:"photo,omitempty" example:"/media/profile_pics/3f1c.png"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsStaff:    u.IsStaff,
		DateJoined: u.DateJoined,
		Photo:      mediaURL(u.Photo),
	}
}

func mediaURL(key string) string {
	if key == "" {
		return ""
	}
	return "/media/" + key
}

func NewUserHandler(
	userService *services.UserService,
	tokenService ports.TokenService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *UserHandler {
	return &UserHandler{
		userService:  userService,
		tokenService: tokenService,
		logger:       logger,
		metrics:      metrics,
	}
}

// @Summary Register
// @Description Create a customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account data"
// @Success 201 {object} successResponse{data=UserResponse} "Account created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 409 {object} errorResponse "Username taken"
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &domain.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusCreated, "User registered successfully", newUserResponse(user))
}

// @Summary Login
// @Description Exchange credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} successResponse{data=LoginResponse} "Logged in"
// @Failure 401 {object} errorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Warn("Login rejected", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		handleServiceError(c, err)
		return
	}

	token, _, err := h.tokenService.CreateToken(user)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to create token")
		return
	}

	newSuccessResponse(c, http.StatusOK, "Logged in", LoginResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}

// @Summary Current user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} successResponse{data=UserResponse} "User found"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), payload.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "User found", newUserResponse(user))
}

// @Summary Update current user
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} successResponse{data=UserResponse} "User updated"
// @Failure 400 {object} errorResponse "Invalid request"
// @Router /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), payload.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	saved, err := h.userService.SaveUser(c.Request.Context(), user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "User updated", newUserResponse(saved))
}

// @Summary Change password
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "New password"
// @Success 200 {object} successResponse "Password changed"
// @Failure 400 {object} errorResponse "Invalid request"
// @Router /users/me/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), payload.UserID, req.Password); err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Password changed", nil)
}

// @Summary Upload profile photo
// @Description Stores the image and normalizes it to a 300x300 square
// @Tags users
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "jpg, png or gif image"
// @Success 200 {object} successResponse{data=UserResponse} "Photo updated"
// @Failure 400 {object} errorResponse "Missing file"
// @Failure 415 {object} errorResponse "Unsupported image type"
// @Failure 422 {object} errorResponse "Saved but not normalized"
// @Router /users/me/photo [put]
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	upload, closeFn, err := formUpload(c, "photo")
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Photo file is required")
		return
	}
	defer closeFn()

	user, err := h.userService.UpdatePhoto(c.Request.Context(), payload.UserID, upload)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Photo updated", newUserResponse(user))
}

// @Summary List users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} successResponse{data=[]UserResponse} "Users"
// @Failure 403 {object} errorResponse "Access denied"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Users found", lo.Map(users, func(u *domain.User, _ int) UserResponse {
		return newUserResponse(u)
	}))
}

// @Summary Delete user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} successResponse "User deleted"
// @Failure 403 {object} errorResponse "Access denied"
// @Failure 404 {object} errorResponse "Not found"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "User deleted", nil)
}

// paramID parses a positive integer path parameter, writing a 400 when it is not one.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		newErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}
