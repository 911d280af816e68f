package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/app/repositories"
	"github.com/ItsRyS/pms-server/internal/pkg/apperrors"
	"github.com/ItsRyS/pms-server/internal/pkg/email"
	"github.com/ItsRyS/pms-server/internal/pkg/filestorage"
	"github.com/ItsRyS/pms-server/internal/pkg/logger"
)

// Review decisions accepted by DocumentService.Review.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
	DecisionReturn  = "return"
)

// DocumentStore is the data access surface DocumentService needs.
// Satisfied by repositories.DocumentRepository.
type DocumentStore interface {
	Insert(ctx context.Context, doc *models.ProjectDocument) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ProjectDocument, error)
	Replace(ctx context.Context, old *models.ProjectDocument, newFilePath string) (int64, error)
	SetStatus(ctx context.Context, documentID int64, status models.DocumentStatus, reason *string) error
	UpdateFileAndStatus(ctx context.Context, documentID int64, filePath string, status models.DocumentStatus) error
	Delete(ctx context.Context, documentID int64) error
	Checklist(ctx context.Context, requestID int64) ([]*repositories.ChecklistRow, error)
	History(ctx context.Context, requestID int64) ([]*repositories.DocumentDetails, error)
	ApprovedTypeCount(ctx context.Context, requestID int64) (int64, error)
	LatestApprovedByType(ctx context.Context, requestID, typeID int64) (*models.ProjectDocument, error)
	SubmitterContact(ctx context.Context, documentID int64) (*repositories.SubmitterContact, error)
}

// DocumentTypeStore is the catalog surface the document workflow needs.
// Satisfied by repositories.DocumentTypeRepository.
type DocumentTypeStore interface {
	List(ctx context.Context) ([]*models.DocumentType, error)
	GetByID(ctx context.Context, id int64) (*models.DocumentType, error)
	Count(ctx context.Context) (int64, error)
}

// ReviewInput carries a reviewer's decision on one document.
type ReviewInput struct {
	Decision    string
	Reason      string
	Replacement *multipart.FileHeader
}

// DocumentService defines the interface for the document workflow
type DocumentService interface {
	Submit(ctx context.Context, requestID, typeID int64, upload *multipart.FileHeader) (*models.ProjectDocument, error)
	Resubmit(ctx context.Context, documentID int64, upload *multipart.FileHeader) (*models.ProjectDocument, error)
	Review(ctx context.Context, documentID int64, input ReviewInput) error
	Checklist(ctx context.Context, requestID int64) ([]*repositories.ChecklistRow, error)
	IsComplete(ctx context.Context, requestID int64) (bool, error)
	History(ctx context.Context, requestID int64) ([]*repositories.DocumentDetails, error)
	Types(ctx context.Context) ([]*models.DocumentType, error)
	Delete(ctx context.Context, documentID int64) error
}

// documentServiceImpl implements DocumentService
type documentServiceImpl struct {
	documentStore DocumentStore
	typeStore     DocumentTypeStore
	requestStore  RequestStore
	storage       filestorage.Storage
	notifier      email.Notifier
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentStore DocumentStore,
	typeStore DocumentTypeStore,
	requestStore RequestStore,
	storage filestorage.Storage,
	notifier email.Notifier,
) DocumentService {
	return &documentServiceImpl{
		documentStore: documentStore,
		typeStore:     typeStore,
		requestStore:  requestStore,
		storage:       storage,
		notifier:      notifier,
	}
}

// Submit stores an uploaded artifact and records a pending submission
// for the given request and document type.
func (s *documentServiceImpl) Submit(ctx context.Context, requestID, typeID int64, upload *multipart.FileHeader) (*models.ProjectDocument, error) {
	if requestID <= 0 || typeID <= 0 {
		return nil, apperrors.NewValidationError("request_id and type_id are required")
	}
	if upload == nil {
		return nil, apperrors.NewValidationError("a document file is required")
	}
	if _, err := s.requestStore.GetByID(ctx, requestID); err != nil {
		return nil, err
	}
	if _, err := s.typeStore.GetByID(ctx, typeID); err != nil {
		return nil, err
	}

	stored, err := s.storage.Save(upload, filestorage.CategoryProjectDocuments)
	if err != nil {
		return nil, apperrors.NewDependencyError(err, "failed to store document")
	}

	doc := &models.ProjectDocument{
		RequestID: requestID,
		TypeID:    typeID,
		FilePath:  stored.URL,
		Status:    models.DocumentPending,
	}
	id, err := s.documentStore.Insert(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("error recording document: %w", err)
	}
	doc.ID = id
	return doc, nil
}

// Resubmit replaces an existing submission with a fresh upload. The row
// is swapped atomically; the superseded artifact is removed only after
// the replacement is committed, and removal failures are logged, not
// surfaced.
func (s *documentServiceImpl) Resubmit(ctx context.Context, documentID int64, upload *multipart.FileHeader) (*models.ProjectDocument, error) {
	if upload == nil {
		return nil, apperrors.NewValidationError("a replacement file is required")
	}

	old, err := s.documentStore.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	stored, err := s.storage.Save(upload, filestorage.CategoryProjectDocuments)
	if err != nil {
		return nil, apperrors.NewDependencyError(err, "failed to store document")
	}

	newID, err := s.documentStore.Replace(ctx, old, stored.URL)
	if err != nil {
		// The fresh upload is now orphaned. Remove it so failed
		// resubmissions do not leak artifacts.
		if delErr := s.storage.Delete(stored.URL, filestorage.CategoryProjectDocuments); delErr != nil {
			logger.Warn().Err(delErr).Str("url", stored.URL).Msg("Failed to remove orphaned upload")
		}
		return nil, err
	}

	if err := s.storage.Delete(old.FilePath, filestorage.CategoryProjectDocuments); err != nil {
		logger.Warn().Err(err).Str("url", old.FilePath).Msg("Failed to remove superseded document artifact")
	}

	return &models.ProjectDocument{
		ID:        newID,
		RequestID: old.RequestID,
		TypeID:    old.TypeID,
		FilePath:  stored.URL,
		Status:    models.DocumentPending,
	}, nil
}

// Review applies a reviewer decision: approve, reject with a mandatory
// reason, or return with a corrected file. The submitting student is
// notified after the row update; notification failures never fail the
// review.
func (s *documentServiceImpl) Review(ctx context.Context, documentID int64, input ReviewInput) error {
	doc, err := s.documentStore.GetByID(ctx, documentID)
	if err != nil {
		return err
	}

	switch input.Decision {
	case DecisionApprove:
		if err := s.documentStore.SetStatus(ctx, documentID, models.DocumentApproved, nil); err != nil {
			return err
		}
		s.notify(ctx, documentID, email.DecisionApproved, "", "")

	case DecisionReject:
		if input.Reason == "" {
			return &apperrors.CustomError{
				Err:     apperrors.ErrRejectReasonRequired,
				Message: "a reason is required to reject a document",
			}
		}
		reason := input.Reason
		if err := s.documentStore.SetStatus(ctx, documentID, models.DocumentRejected, &reason); err != nil {
			return err
		}
		s.notify(ctx, documentID, email.DecisionRejected, input.Reason, "")

	case DecisionReturn:
		if input.Replacement == nil {
			return apperrors.NewValidationError("a corrected file is required to return a document")
		}
		stored, err := s.storage.Save(input.Replacement, filestorage.CategoryProjectDocuments)
		if err != nil {
			return apperrors.NewDependencyError(err, "failed to store corrected document")
		}
		if err := s.documentStore.UpdateFileAndStatus(ctx, documentID, stored.URL, models.DocumentReturned); err != nil {
			if delErr := s.storage.Delete(stored.URL, filestorage.CategoryProjectDocuments); delErr != nil {
				logger.Warn().Err(delErr).Str("url", stored.URL).Msg("Failed to remove orphaned upload")
			}
			return err
		}
		if err := s.storage.Delete(doc.FilePath, filestorage.CategoryProjectDocuments); err != nil {
			logger.Warn().Err(err).Str("url", doc.FilePath).Msg("Failed to remove superseded document artifact")
		}
		s.notify(ctx, documentID, email.DecisionReturned, "", stored.URL)

	default:
		return apperrors.NewValidationError("decision must be approve, reject or return")
	}
	return nil
}

// Checklist lists every catalog type with the request's submission
// state; unsubmitted types are reported as missing.
func (s *documentServiceImpl) Checklist(ctx context.Context, requestID int64) ([]*repositories.ChecklistRow, error) {
	return s.documentStore.Checklist(ctx, requestID)
}

// IsComplete reports whether the request has an approved submission for
// every catalog type.
func (s *documentServiceImpl) IsComplete(ctx context.Context, requestID int64) (bool, error) {
	approved, err := s.documentStore.ApprovedTypeCount(ctx, requestID)
	if err != nil {
		return false, err
	}
	total, err := s.typeStore.Count(ctx)
	if err != nil {
		return false, err
	}
	return approved >= total, nil
}

// History lists every submission for a request, newest first.
func (s *documentServiceImpl) History(ctx context.Context, requestID int64) ([]*repositories.DocumentDetails, error) {
	return s.documentStore.History(ctx, requestID)
}

// Types lists the document type catalog.
func (s *documentServiceImpl) Types(ctx context.Context) ([]*models.DocumentType, error) {
	return s.typeStore.List(ctx)
}

// Delete removes a submission. The database row is authoritative:
// artifact removal is best effort and failures only get logged.
func (s *documentServiceImpl) Delete(ctx context.Context, documentID int64) error {
	doc, err := s.documentStore.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if err := s.documentStore.Delete(ctx, documentID); err != nil {
		return err
	}
	if err := s.storage.Delete(doc.FilePath, filestorage.CategoryProjectDocuments); err != nil {
		logger.Warn().Err(err).Str("url", doc.FilePath).Msg("Failed to remove document artifact")
	}
	return nil
}

func (s *documentServiceImpl) notify(ctx context.Context, documentID int64, decision email.DocumentDecision, reason, fileURL string) {
	contact, err := s.documentStore.SubmitterContact(ctx, documentID)
	if err != nil {
		logger.Warn().Err(err).Int64("document_id", documentID).Msg("Failed to resolve notification recipient")
		return
	}
	subject := email.DocumentReviewSubject(contact.TypeName, decision)
	body := email.DocumentReviewBody(contact.Username, contact.TypeName, decision, reason, fileURL)
	if err := s.notifier.Send(contact.Email, subject, body); err != nil {
		logger.Warn().Err(err).Str("to", contact.Email).Msg("Failed to send review notification")
	}
}
