package http

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/ports"
)

type JWTTokenService struct {
	secretKey []byte
	duration  time.Duration
	logger    ports.LoggerPort
}

func NewJWTTokenService(secretKey string, duration time.Duration, logger ports.LoggerPort) *JWTTokenService {
	return &JWTTokenService{
		secretKey: []byte(secretKey),
		duration:  duration,
		logger:    logger,
	}
}

func (j *JWTTokenService) CreateToken(user *domain.User) (string, *domain.TokenPayload, error) {
	payload := &domain.TokenPayload{
		ID:     uuid.New(),
		UserID: user.ID,
		Role:   user.Role(),
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"id":      payload.ID.String(),
		"user_id": payload.UserID,
		"role":    string(payload.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(j.duration).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		j.logger.Error("Failed to sign jwt", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
		return "", nil, err
	}
	return token, payload, nil
}

func (j *JWTTokenService) VerifyToken(token string) (*domain.TokenPayload, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		j.logger.Warn("Failed to parse jwt", map[string]interface{}{
			"error":  err.Error(),
			"method": "VerifyToken",
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims", domain.ErrUnauthorized)
	}

	idStr, ok := claims["id"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid id claim", domain.ErrUnauthorized)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id claim", domain.ErrUnauthorized)
	}

	// JSON numbers decode as float64.
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, fmt.Errorf("%w: invalid user_id claim", domain.ErrUnauthorized)
	}

	roleClaimed, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid role claim", domain.ErrUnauthorized)
	}
	role := domain.UserRole(roleClaimed)
	if role != domain.Admin && role != domain.AppUser {
		j.logger.Warn("Invalid role in token", map[string]interface{}{
			"role":   roleClaimed,
			"method": "VerifyToken",
		})
		return nil, fmt.Errorf("%w: invalid role value", domain.ErrUnauthorized)
	}

	return &domain.TokenPayload{
		ID:     id,
		UserID: int64(userID),
		Role:   role,
	}, nil
}
