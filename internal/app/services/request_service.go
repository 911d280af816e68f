package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/app/models/dto"
	"github.com/ItsRyS/pms-server/internal/app/repositories"
	"github.com/ItsRyS/pms-server/internal/pkg/apperrors"
	"github.com/ItsRyS/pms-server/internal/pkg/filestorage"
	"github.com/ItsRyS/pms-server/internal/pkg/logger"
)

// RequestStore is the data access surface RequestService needs.
// Satisfied by repositories.RequestRepository.
type RequestStore interface {
	ActiveStudentIDs(ctx context.Context, studentIDs []int64) ([]int64, error)
	Create(ctx context.Context, req *models.ProjectRequest, members []int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ProjectRequest, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.ProjectRequest, error)
	ActiveByStudent(ctx context.Context, studentID int64) ([]*models.ProjectRequest, error)
	ListAll(ctx context.Context) ([]*repositories.RequestDetails, error)
	Approve(ctx context.Context, requestID int64) (int64, error)
	Reject(ctx context.Context, requestID int64) error
	Delete(ctx context.Context, requestID int64) ([]string, error)
}

// RequestService defines the interface for project request operations
type RequestService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequestRequest) (int64, error)
	ListForStudent(ctx context.Context, studentID int64) ([]*models.ProjectRequest, error)
	ListAll(ctx context.Context) ([]*repositories.RequestDetails, error)
	SetStatus(ctx context.Context, requestID int64, status string) error
	Delete(ctx context.Context, requestID int64) error
	ActiveRequestsFor(ctx context.Context, studentID int64) ([]*models.ProjectRequest, error)
}

// requestServiceImpl implements RequestService
type requestServiceImpl struct {
	requestStore RequestStore
	storage      filestorage.Storage
}

// NewRequestService creates a new RequestService
func NewRequestService(requestStore RequestStore, storage filestorage.Storage) RequestService {
	return &requestServiceImpl{requestStore: requestStore, storage: storage}
}

// Create validates a proposal, rejects it when any group member already
// has an active request, and records it with its roster atomically.
func (s *requestServiceImpl) Create(ctx context.Context, req *dto.CreateProjectRequestRequest) (int64, error) {
	if strings.TrimSpace(req.ProjectNameTH) == "" || strings.TrimSpace(req.ProjectNameEN) == "" {
		return 0, apperrors.NewValidationError("project name is required in both languages")
	}
	if strings.TrimSpace(req.ProjectType) == "" {
		return 0, apperrors.NewValidationError("project type is required")
	}

	members := normalizeMembers(req.StudentID, req.GroupMembers)

	busy, err := s.requestStore.ActiveStudentIDs(ctx, members)
	if err != nil {
		return 0, fmt.Errorf("error checking active requests: %w", err)
	}
	if len(busy) > 0 {
		return 0, (&apperrors.CustomError{
			Err:     apperrors.ErrActiveRequestExists,
			Message: fmt.Sprintf("students already on an active request: %s", joinIDs(busy)),
		}).WithDetails(map[string]interface{}{"student_ids": busy})
	}

	request := &models.ProjectRequest{
		NameTH:      req.ProjectNameTH,
		NameEN:      req.ProjectNameEN,
		ProjectType: req.ProjectType,
		AdvisorID:   req.AdvisorID,
		StudentID:   req.StudentID,
	}
	id, err := s.requestStore.Create(ctx, request, members)
	if err != nil {
		return 0, fmt.Errorf("error creating project request: %w", err)
	}
	return id, nil
}

// ListForStudent retrieves a student's own requests, newest first.
func (s *requestServiceImpl) ListForStudent(ctx context.Context, studentID int64) ([]*models.ProjectRequest, error) {
	return s.requestStore.ListByStudent(ctx, studentID)
}

// ListAll retrieves every request with advisor and member names.
func (s *requestServiceImpl) ListAll(ctx context.Context) ([]*repositories.RequestDetails, error) {
	return s.requestStore.ListAll(ctx)
}

// SetStatus applies an approve or reject decision. Approval releases
// the project; rejection frees the roster members.
func (s *requestServiceImpl) SetStatus(ctx context.Context, requestID int64, status string) error {
	decision := models.RequestStatus(status)
	if decision != models.RequestApproved && decision != models.RequestRejected {
		return apperrors.NewValidationError("status must be approved or rejected")
	}

	if _, err := s.requestStore.GetByID(ctx, requestID); err != nil {
		return err
	}

	if decision == models.RequestApproved {
		if _, err := s.requestStore.Approve(ctx, requestID); err != nil {
			return fmt.Errorf("error approving request: %w", err)
		}
		return nil
	}
	if err := s.requestStore.Reject(ctx, requestID); err != nil {
		return fmt.Errorf("error rejecting request: %w", err)
	}
	return nil
}

// Delete removes a request along with its document and roster rows.
// Stored artifacts are removed after the row deletes commit; removal
// failures only get logged, the rows stay authoritative.
func (s *requestServiceImpl) Delete(ctx context.Context, requestID int64) error {
	filePaths, err := s.requestStore.Delete(ctx, requestID)
	if err != nil {
		return err
	}
	for _, path := range filePaths {
		if err := s.storage.Delete(path, filestorage.CategoryProjectDocuments); err != nil {
			logger.Warn().Err(err).Str("url", path).Msg("Failed to remove document artifact")
		}
	}
	return nil
}

// ActiveRequestsFor retrieves the pending or approved requests a
// student currently belongs to.
func (s *requestServiceImpl) ActiveRequestsFor(ctx context.Context, studentID int64) ([]*models.ProjectRequest, error) {
	return s.requestStore.ActiveByStudent(ctx, studentID)
}

// normalizeMembers guarantees the submitting student is on the roster
// exactly once and drops duplicate ids.
func normalizeMembers(studentID int64, members []int64) []int64 {
	seen := map[int64]bool{studentID: true}
	result := []int64{studentID}
	for _, id := range members {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	return result
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
