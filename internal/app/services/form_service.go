package services

import (
	"context"
	"mime/multipart"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/app/models/dto"
	"github.com/ItsRyS/pms-server/internal/pkg/apperrors"
	"github.com/ItsRyS/pms-server/internal/pkg/filestorage"
	"github.com/ItsRyS/pms-server/internal/pkg/logger"
)

// FormStore is the data access surface FormService needs.
// Satisfied by repositories.FormRepository.
type FormStore interface {
	Create(ctx context.Context, form *models.DocumentForm) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.DocumentForm, error)
	List(ctx context.Context) ([]*models.DocumentForm, error)
	Delete(ctx context.Context, id int64) error
}

// FormService defines the interface for downloadable forms
type FormService interface {
	Upload(ctx context.Context, uploadedBy int64, req *dto.UploadFormRequest, file *multipart.FileHeader) (*models.DocumentForm, error)
	List(ctx context.Context) ([]*models.DocumentForm, error)
	Delete(ctx context.Context, id int64) error
}

// formServiceImpl implements FormService
type formServiceImpl struct {
	formStore FormStore
	storage   filestorage.Storage
}

// NewFormService creates a new FormService
func NewFormService(formStore FormStore, storage filestorage.Storage) FormService {
	return &formServiceImpl{formStore: formStore, storage: storage}
}

// Upload stores a new downloadable form.
func (s *formServiceImpl) Upload(ctx context.Context, uploadedBy int64, req *dto.UploadFormRequest, file *multipart.FileHeader) (*models.DocumentForm, error) {
	if file == nil {
		return nil, apperrors.NewValidationError("a form file is required")
	}

	stored, err := s.storage.Save(file, filestorage.CategoryDocumentForms)
	if err != nil {
		return nil, err
	}

	form := &models.DocumentForm{
		Title:       req.Title,
		Description: req.Description,
		Path:        stored.URL,
		UploadedBy:  uploadedBy,
	}
	id, err := s.formStore.Create(ctx, form)
	if err != nil {
		if delErr := s.storage.Delete(stored.URL, filestorage.CategoryDocumentForms); delErr != nil {
			logger.Warn().Err(delErr).Str("url", stored.URL).Msg("Failed to remove orphaned form file")
		}
		return nil, err
	}
	form.ID = id
	return form, nil
}

// List retrieves every form, newest first.
func (s *formServiceImpl) List(ctx context.Context) ([]*models.DocumentForm, error) {
	return s.formStore.List(ctx)
}

// Delete removes a form; the artifact removal that follows the row
// delete is best effort.
func (s *formServiceImpl) Delete(ctx context.Context, id int64) error {
	form, err := s.formStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.formStore.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(form.Path, filestorage.CategoryDocumentForms); err != nil {
		logger.Warn().Err(err).Str("url", form.Path).Msg("Failed to remove form file")
	}
	return nil
}
