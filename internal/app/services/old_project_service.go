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

// OldProjectStore is the data access surface OldProjectService needs.
// Satisfied by repositories.OldProjectRepository.
type OldProjectStore interface {
	Create(ctx context.Context, p *models.OldProject) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.OldProject, error)
	List(ctx context.Context) ([]*models.OldProject, error)
	Update(ctx context.Context, p *models.OldProject) error
	Delete(ctx context.Context, id int64) error
}

// OldProjectService defines the interface for the project archive
type OldProjectService interface {
	Create(ctx context.Context, req *dto.CreateOldProjectRequest, file *multipart.FileHeader) (*models.OldProject, error)
	List(ctx context.Context) ([]*models.OldProject, error)
	Update(ctx context.Context, id int64, req *dto.UpdateOldProjectRequest, file *multipart.FileHeader) error
	Delete(ctx context.Context, id int64) error
}

// oldProjectServiceImpl implements OldProjectService
type oldProjectServiceImpl struct {
	archiveStore OldProjectStore
	storage      filestorage.Storage
}

// NewOldProjectService creates a new OldProjectService
func NewOldProjectService(archiveStore OldProjectStore, storage filestorage.Storage) OldProjectService {
	return &oldProjectServiceImpl{archiveStore: archiveStore, storage: storage}
}

// Create archives a past project together with its report PDF.
func (s *oldProjectServiceImpl) Create(ctx context.Context, req *dto.CreateOldProjectRequest, file *multipart.FileHeader) (*models.OldProject, error) {
	if file == nil {
		return nil, apperrors.NewValidationError("a report file is required")
	}

	stored, err := s.storage.Save(file, filestorage.CategoryOldProjects)
	if err != nil {
		return nil, err
	}

	project := &models.OldProject{
		NameTH:       req.NameTH,
		NameEN:       req.NameEN,
		ProjectType:  req.ProjectType,
		DocumentYear: req.DocumentYear,
		FilePath:     stored.URL,
	}
	id, err := s.archiveStore.Create(ctx, project)
	if err != nil {
		if delErr := s.storage.Delete(stored.URL, filestorage.CategoryOldProjects); delErr != nil {
			logger.Warn().Err(delErr).Str("url", stored.URL).Msg("Failed to remove orphaned archive file")
		}
		return nil, err
	}
	project.ID = id
	return project, nil
}

// List retrieves the archive, newest document years first.
func (s *oldProjectServiceImpl) List(ctx context.Context) ([]*models.OldProject, error) {
	return s.archiveStore.List(ctx)
}

// Update rewrites the archive entry. Empty payload fields keep their
// stored values; a new file replaces the PDF, and the superseded
// artifact is removed after the row update.
func (s *oldProjectServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateOldProjectRequest, file *multipart.FileHeader) error {
	current, err := s.archiveStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if req.NameTH != "" {
		current.NameTH = req.NameTH
	}
	if req.NameEN != "" {
		current.NameEN = req.NameEN
	}
	if req.ProjectType != "" {
		current.ProjectType = req.ProjectType
	}
	if req.DocumentYear != 0 {
		current.DocumentYear = req.DocumentYear
	}

	oldFile := ""
	if file != nil {
		stored, err := s.storage.Save(file, filestorage.CategoryOldProjects)
		if err != nil {
			return err
		}
		oldFile = current.FilePath
		current.FilePath = stored.URL
	}

	if err := s.archiveStore.Update(ctx, current); err != nil {
		if file != nil {
			if delErr := s.storage.Delete(current.FilePath, filestorage.CategoryOldProjects); delErr != nil {
				logger.Warn().Err(delErr).Str("url", current.FilePath).Msg("Failed to remove orphaned archive file")
			}
		}
		return err
	}

	if oldFile != "" {
		if err := s.storage.Delete(oldFile, filestorage.CategoryOldProjects); err != nil {
			logger.Warn().Err(err).Str("url", oldFile).Msg("Failed to remove superseded archive file")
		}
	}
	return nil
}

// Delete removes an archive entry; the artifact removal that follows
// the row delete is best effort.
func (s *oldProjectServiceImpl) Delete(ctx context.Context, id int64) error {
	project, err := s.archiveStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.archiveStore.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(project.FilePath, filestorage.CategoryOldProjects); err != nil {
		logger.Warn().Err(err).Str("url", project.FilePath).Msg("Failed to remove archive file")
	}
	return nil
}
