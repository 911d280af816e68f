package services

import (
	"context"
	"mime/multipart"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/app/models/dto"
	"github.com/ItsRyS/pms-server/internal/pkg/filestorage"
	"github.com/ItsRyS/pms-server/internal/pkg/logger"
)

// TeacherStore is the data access surface TeacherService needs.
// Satisfied by repositories.TeacherRepository.
type TeacherStore interface {
	Create(ctx context.Context, teacher *models.Teacher) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	List(ctx context.Context) ([]*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// TeacherService defines the interface for advisor profile operations
type TeacherService interface {
	Create(ctx context.Context, req *dto.TeacherRequest, image *multipart.FileHeader) (*models.Teacher, error)
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	List(ctx context.Context) ([]*models.Teacher, error)
	Update(ctx context.Context, id int64, req *dto.TeacherRequest, image *multipart.FileHeader) error
	Delete(ctx context.Context, id int64) error
}

// teacherServiceImpl implements TeacherService
type teacherServiceImpl struct {
	teacherStore TeacherStore
	storage      filestorage.Storage
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(teacherStore TeacherStore, storage filestorage.Storage) TeacherService {
	return &teacherServiceImpl{teacherStore: teacherStore, storage: storage}
}

// Create adds an advisor profile, storing the portrait when provided.
func (s *teacherServiceImpl) Create(ctx context.Context, req *dto.TeacherRequest, image *multipart.FileHeader) (*models.Teacher, error) {
	teacher := &models.Teacher{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Academic: req.Academic,
		Expert:   req.Expert,
	}

	if image != nil {
		stored, err := s.storage.Save(image, filestorage.CategoryProfileImages)
		if err != nil {
			return nil, err
		}
		teacher.Image = stored.URL
	}

	id, err := s.teacherStore.Create(ctx, teacher)
	if err != nil {
		if teacher.Image != "" {
			if delErr := s.storage.Delete(teacher.Image, filestorage.CategoryProfileImages); delErr != nil {
				logger.Warn().Err(delErr).Str("url", teacher.Image).Msg("Failed to remove orphaned teacher image")
			}
		}
		return nil, err
	}
	teacher.ID = id
	return teacher, nil
}

// GetByID retrieves one advisor profile.
func (s *teacherServiceImpl) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return s.teacherStore.GetByID(ctx, id)
}

// List retrieves every advisor profile.
func (s *teacherServiceImpl) List(ctx context.Context) ([]*models.Teacher, error) {
	return s.teacherStore.List(ctx)
}

// Update rewrites an advisor profile. A new portrait replaces the
// stored one, which is removed after the row update succeeds.
func (s *teacherServiceImpl) Update(ctx context.Context, id int64, req *dto.TeacherRequest, image *multipart.FileHeader) error {
	current, err := s.teacherStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	teacher := &models.Teacher{
		ID:       id,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Academic: req.Academic,
		Expert:   req.Expert,
	}

	if image != nil {
		stored, err := s.storage.Save(image, filestorage.CategoryProfileImages)
		if err != nil {
			return err
		}
		teacher.Image = stored.URL
	}

	if err := s.teacherStore.Update(ctx, teacher); err != nil {
		if teacher.Image != "" {
			if delErr := s.storage.Delete(teacher.Image, filestorage.CategoryProfileImages); delErr != nil {
				logger.Warn().Err(delErr).Str("url", teacher.Image).Msg("Failed to remove orphaned teacher image")
			}
		}
		return err
	}

	if teacher.Image != "" && current.Image != "" {
		if err := s.storage.Delete(current.Image, filestorage.CategoryProfileImages); err != nil {
			logger.Warn().Err(err).Str("url", current.Image).Msg("Failed to remove old teacher image")
		}
	}
	return nil
}

// Delete removes an advisor profile and its portrait.
func (s *teacherServiceImpl) Delete(ctx context.Context, id int64) error {
	teacher, err := s.teacherStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.teacherStore.Delete(ctx, id); err != nil {
		return err
	}
	if teacher.Image != "" {
		if err := s.storage.Delete(teacher.Image, filestorage.CategoryProfileImages); err != nil {
			logger.Warn().Err(err).Str("url", teacher.Image).Msg("Failed to remove teacher image")
		}
	}
	return nil
}
