package services

import (
	"context"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/app/models/dto"
)

// ProjectTypeStore is the data access surface ProjectTypeService needs.
// Satisfied by repositories.ProjectTypeRepository.
type ProjectTypeStore interface {
	Create(ctx context.Context, pt *models.ProjectType) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ProjectType, error)
	List(ctx context.Context) ([]*models.ProjectType, error)
	Update(ctx context.Context, pt *models.ProjectType) error
	Delete(ctx context.Context, id int64) error
}

// ProjectTypeService defines the interface for the project type catalog
type ProjectTypeService interface {
	Create(ctx context.Context, req *dto.ProjectTypeRequest) (*models.ProjectType, error)
	List(ctx context.Context) ([]*models.ProjectType, error)
	Update(ctx context.Context, id int64, req *dto.ProjectTypeRequest) error
	Delete(ctx context.Context, id int64) error
}

// projectTypeServiceImpl implements ProjectTypeService
type projectTypeServiceImpl struct {
	typeStore ProjectTypeStore
}

// NewProjectTypeService creates a new ProjectTypeService
func NewProjectTypeService(typeStore ProjectTypeStore) ProjectTypeService {
	return &projectTypeServiceImpl{typeStore: typeStore}
}

// Create adds a catalog entry.
func (s *projectTypeServiceImpl) Create(ctx context.Context, req *dto.ProjectTypeRequest) (*models.ProjectType, error) {
	pt := &models.ProjectType{
		Name:        req.Name,
		Description: req.Description,
	}
	id, err := s.typeStore.Create(ctx, pt)
	if err != nil {
		return nil, err
	}
	pt.ID = id
	return pt, nil
}

// List retrieves the catalog.
func (s *projectTypeServiceImpl) List(ctx context.Context) ([]*models.ProjectType, error) {
	return s.typeStore.List(ctx)
}

// Update rewrites a catalog entry.
func (s *projectTypeServiceImpl) Update(ctx context.Context, id int64, req *dto.ProjectTypeRequest) error {
	return s.typeStore.Update(ctx, &models.ProjectType{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
}

// Delete removes a catalog entry.
func (s *projectTypeServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.typeStore.Delete(ctx, id)
}
