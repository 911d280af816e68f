package services

import (
	"context"
	"fmt"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/app/repositories"
	"github.com/ItsRyS/pms-server/internal/pkg/apperrors"
)

// ReleaseStore is the data access surface ReleaseService needs.
// Satisfied by repositories.ReleaseRepository.
type ReleaseStore interface {
	ListActive(ctx context.Context) ([]*repositories.ReleaseDetails, error)
	ListPendingReview(ctx context.Context) ([]*repositories.ReleaseDetails, error)
	GetByID(ctx context.Context, projectID int64) (*models.ReleasedProject, error)
	SetStatus(ctx context.Context, projectID int64, status models.ProjectStatus) error
	LatestRequestID(ctx context.Context, projectID int64) (int64, error)
}

// ReleaseService defines the interface for released project operations
type ReleaseService interface {
	ListActive(ctx context.Context) ([]*repositories.ReleaseDetails, error)
	ListPendingReview(ctx context.Context) ([]*repositories.ReleaseDetails, error)
	MarkComplete(ctx context.Context, projectID int64) error
	CompleteReportURL(ctx context.Context, projectID int64) (string, error)
	UnapprovedDocuments(ctx context.Context, projectID int64) ([]*repositories.ChecklistRow, error)
}

// releaseServiceImpl implements ReleaseService. The checklist engine
// owns the completion gate; this service only orchestrates around it.
type releaseServiceImpl struct {
	releaseStore  ReleaseStore
	documentStore DocumentStore
	checklist     DocumentService
}

// NewReleaseService creates a new ReleaseService
func NewReleaseService(releaseStore ReleaseStore, documentStore DocumentStore, checklist DocumentService) ReleaseService {
	return &releaseServiceImpl{
		releaseStore:  releaseStore,
		documentStore: documentStore,
		checklist:     checklist,
	}
}

// ListActive retrieves every tracked project with advisor and team
// names.
func (s *releaseServiceImpl) ListActive(ctx context.Context) ([]*repositories.ReleaseDetails, error) {
	return s.releaseStore.ListActive(ctx)
}

// ListPendingReview retrieves the projects still operating.
func (s *releaseServiceImpl) ListPendingReview(ctx context.Context) ([]*repositories.ReleaseDetails, error) {
	return s.releaseStore.ListPendingReview(ctx)
}

// MarkComplete closes a project once every required document type has
// an approved submission on its latest request.
func (s *releaseServiceImpl) MarkComplete(ctx context.Context, projectID int64) error {
	project, err := s.releaseStore.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.Status == models.ProjectComplete {
		return &apperrors.CustomError{
			Err:     apperrors.ErrProjectAlreadyComplete,
			Message: fmt.Sprintf("project %d is already completed", projectID),
		}
	}

	requestID, err := s.releaseStore.LatestRequestID(ctx, projectID)
	if err != nil {
		return err
	}

	complete, err := s.checklist.IsComplete(ctx, requestID)
	if err != nil {
		return err
	}
	if !complete {
		return &apperrors.CustomError{
			Err:     apperrors.ErrDocumentsMissing,
			Message: "not every required document has been approved",
		}
	}

	return s.releaseStore.SetStatus(ctx, projectID, models.ProjectComplete)
}

// CompleteReportURL resolves the final report artifact of a completed
// project: the newest approved complete-report submission on the
// project's latest request.
func (s *releaseServiceImpl) CompleteReportURL(ctx context.Context, projectID int64) (string, error) {
	project, err := s.releaseStore.GetByID(ctx, projectID)
	if err != nil {
		return "", err
	}
	if project.Status != models.ProjectComplete {
		return "", &apperrors.CustomError{
			Err:     apperrors.ErrCompleteReportNotFound,
			Message: fmt.Sprintf("project %d is not completed", projectID),
		}
	}

	requestID, err := s.releaseStore.LatestRequestID(ctx, projectID)
	if err != nil {
		return "", err
	}

	doc, err := s.documentStore.LatestApprovedByType(ctx, requestID, models.CompleteReportTypeID)
	if err != nil {
		if err == apperrors.ErrDocumentNotFound {
			return "", apperrors.ErrCompleteReportNotFound
		}
		return "", err
	}
	return doc.FilePath, nil
}

// UnapprovedDocuments lists the checklist rows of the project's latest
// request that still lack an approved submission.
func (s *releaseServiceImpl) UnapprovedDocuments(ctx context.Context, projectID int64) ([]*repositories.ChecklistRow, error) {
	if _, err := s.releaseStore.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	requestID, err := s.releaseStore.LatestRequestID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	rows, err := s.checklist.Checklist(ctx, requestID)
	if err != nil {
		return nil, err
	}

	pending := make([]*repositories.ChecklistRow, 0)
	for _, row := range rows {
		if row.Status != string(models.DocumentApproved) {
			pending = append(pending, row)
		}
	}
	return pending, nil
}
