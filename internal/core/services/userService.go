package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/ports"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type UserService struct {
	userRepo   ports.UserRepository
	storage    ports.MediaStorage
	normalizer ports.PhotoNormalizer
	logger     ports.LoggerPort
	validate   *validator.Validate
}

func NewUserService(
	userRepo ports.UserRepository,
	storage ports.MediaStorage,
	normalizer ports.PhotoNormalizer,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		storage:    storage,
		normalizer: normalizer,
		logger:     logger,
		validate:   validate,
	}
}

func (s *UserService) Register(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	if err := s.validate.Struct(user); err != nil {
		s.logger.Error("User validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	user.PasswordHash = string(hash)
	user.IsActive = true

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		s.logger.Error("Failed to create user", map[string]interface{}{
			"error":    err.Error(),
			"username": user.Username,
		})
		return nil, err
	}

	s.logger.Info("User registered", map[string]interface{}{
		"user_id":  created.ID,
		"is_staff": created.IsStaff,
	})
	return created, nil
}

func (s *UserService) CreateSuperuser(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	user.IsStaff = true
	return s.Register(ctx, user, password)
}

// Authenticate returns ErrUnauthorized for unknown users, wrong passwords and
// inactive accounts alike.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil || !user.IsActive {
		s.logger.Warn("Failed login attempt", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, domain.ErrUnauthorized
	}

	if err := s.userRepo.SetLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("Failed to record last login", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id,
		})
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListUsers(ctx)
}

// SaveUser persists the user and then normalizes the photo, if any. The two
// steps are not atomic: when normalization fails the row is already written
// and the returned error wraps domain.ErrPhotoNormalization.
func (s *UserService) SaveUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.validate.Struct(user); err != nil {
		s.logger.Error("User validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	saved, err := s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		s.logger.Error("Failed to update user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
		return nil, err
	}

	if err := s.normalizePhoto(ctx, saved); err != nil {
		return saved, err
	}

	s.logger.Info("User saved", map[string]interface{}{
		"user_id": saved.ID,
	})
	return saved, nil
}

// UpdatePhoto stores the upload under profile_pics/, saves the user and
// normalizes the new file. The previous photo is removed once the new one is
// recorded.
func (s *UserService) UpdatePhoto(ctx context.Context, userID int64, upload *domain.Upload) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key, err := storeUpload(ctx, s.storage, domain.ProfilePicsDir, upload)
	if err != nil {
		s.logger.Error("Failed to store photo", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return nil, err
	}

	previous := user.Photo
	user.Photo = key
	saved, err := s.SaveUser(ctx, user)
	if saved == nil {
		removeMedia(ctx, s.storage, s.logger, key)
		return nil, err
	}
	if previous != "" && previous != key {
		removeMedia(ctx, s.storage, s.logger, previous)
	}
	return saved, err
}

func (s *UserService) ChangePassword(ctx context.Context, userID int64, password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	user.PasswordHash = string(hash)
	_, err = s.userRepo.UpdateUser(ctx, user)
	return err
}

// DeleteUser removes the account and its photo. Comments go with it, posts
// lose their author and orders keep a dangling client id.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		s.logger.Error("Failed to delete user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id,
		})
		return err
	}
	removeMedia(ctx, s.storage, s.logger, user.Photo)

	s.logger.Info("User deleted", map[string]interface{}{
		"user_id": id,
	})
	return nil
}

// NormalizeAllPhotos re-runs normalization for every user with a photo and
// returns how many succeeded. Failures are joined into the returned error.
func (s *UserService) NormalizeAllPhotos(ctx context.Context) (int, error) {
	users, err := s.userRepo.ListUsersWithPhoto(ctx)
	if err != nil {
		return 0, err
	}

	var (
		done int
		errs []error
	)
	for _, user := range users {
		if err := s.normalizePhoto(ctx, user); err != nil {
			errs = append(errs, fmt.Errorf("user %d: %w", user.ID, err))
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}

func (s *UserService) normalizePhoto(ctx context.Context, user *domain.User) error {
	if !user.HasPhoto() {
		return nil
	}
	if err := s.normalizer.Normalize(ctx, user.Photo); err != nil {
		s.logger.Error("Photo normalization failed", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
			"photo":   user.Photo,
		})
		if !errors.Is(err, domain.ErrPhotoNormalization) {
			err = fmt.Errorf("%w: %w", domain.ErrPhotoNormalization, err)
		}
		return err
	}
	return nil
}
