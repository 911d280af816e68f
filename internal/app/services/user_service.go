package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/app/models/dto"
	"github.com/ItsRyS/pms-server/internal/pkg/auth"
	"github.com/ItsRyS/pms-server/internal/pkg/filestorage"
	"github.com/ItsRyS/pms-server/internal/pkg/logger"
)

// UserService defines the interface for account administration
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) error
	SetProfileImage(ctx context.Context, userID int64, upload *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, id int64) error
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userStore UserStore
	storage   filestorage.Storage
}

// NewUserService creates a new UserService
func NewUserService(userStore UserStore, storage filestorage.Storage) UserService {
	return &userServiceImpl{userStore: userStore, storage: storage}
}

// Create adds an account with an admin-chosen role. The role defaults
// to student when the payload leaves it empty.
func (s *userServiceImpl) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Role:     role,
	}
	id, err := s.userStore.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// GetByID retrieves one account.
func (s *userServiceImpl) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userStore.GetByID(ctx, id)
}

// List retrieves every account.
func (s *userServiceImpl) List(ctx context.Context) ([]*models.User, error) {
	return s.userStore.List(ctx)
}

// Update rewrites the account fields named by the payload. An empty
// password keeps the stored hash.
func (s *userServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) error {
	user := &models.User{
		ID:       id,
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	}
	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}
		user.Password = hashed
	}
	return s.userStore.Update(ctx, user)
}

// SetProfileImage stores a new avatar and replaces the account's image
// URL. The previous artifact is removed afterwards, best effort.
func (s *userServiceImpl) SetProfileImage(ctx context.Context, userID int64, upload *multipart.FileHeader) (string, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	stored, err := s.storage.Save(upload, filestorage.CategoryProfileImages)
	if err != nil {
		return "", err
	}
	if err := s.userStore.SetProfileImage(ctx, userID, stored.URL); err != nil {
		if delErr := s.storage.Delete(stored.URL, filestorage.CategoryProfileImages); delErr != nil {
			logger.Warn().Err(delErr).Str("url", stored.URL).Msg("Failed to remove orphaned profile image")
		}
		return "", err
	}

	if user.ProfileImage != "" {
		if err := s.storage.Delete(user.ProfileImage, filestorage.CategoryProfileImages); err != nil {
			logger.Warn().Err(err).Str("url", user.ProfileImage).Msg("Failed to remove old profile image")
		}
	}
	return stored.URL, nil
}

// Delete removes an account.
func (s *userServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.userStore.Delete(ctx, id)
}
