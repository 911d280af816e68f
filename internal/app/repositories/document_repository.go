package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/db"
	"github.com/ItsRyS/pms-server/internal/pkg/apperrors"
	"github.com/ItsRyS/pms-server/internal/pkg/helpers"
	"github.com/ItsRyS/pms-server/internal/pkg/logger"
)

// ChecklistRow is one catalog type matched against a request's
// submissions. Types without a submission carry status "missing" and
// nil document fields.
type ChecklistRow struct {
	TypeID       int64      `json:"type_id"`
	TypeName     string     `json:"type_name"`
	DocumentID   *int64     `json:"document_id,omitempty"`
	FilePath     *string    `json:"file_path,omitempty"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	Status       string     `json:"status"`
	RejectReason *string    `json:"reject_reason,omitempty"`
}

// DocumentDetails is a submitted document joined with its type name.
type DocumentDetails struct {
	models.ProjectDocument
	TypeName string `json:"type_name"`
}

// SubmitterContact identifies who to notify about a review decision.
type SubmitterContact struct {
	Email    string
	Username string
	TypeName string
}

// DocumentRepository handles database operations for project documents.
type DocumentRepository struct {
	db *db.PostgresDB
}

// NewDocumentRepository creates a new instance of DocumentRepository.
func NewDocumentRepository(database *db.PostgresDB) *DocumentRepository {
	return &DocumentRepository{db: database}
}

func selectDocumentQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"document_id", "request_id", "type_id", "file_path",
		"submitted_at", "status", "reject_reason",
	).From("project_documents").PlaceholderFormat(squirrel.Dollar)
}

func scanDocument(row pgx.Row) (*models.ProjectDocument, error) {
	var doc models.ProjectDocument
	err := row.Scan(
		&doc.ID, &doc.RequestID, &doc.TypeID, &doc.FilePath,
		&doc.SubmittedAt, &doc.Status, &doc.RejectReason,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrDocumentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning project document")
		return nil, err
	}
	return &doc, nil
}

// Insert stores a freshly submitted document in the pending state.
func (r *DocumentRepository) Insert(ctx context.Context, doc *models.ProjectDocument) (int64, error) {
	sqlStr, args, err := squirrel.Insert("project_documents").
		Columns("request_id", "type_id", "file_path", "submitted_at", "status").
		Values(doc.RequestID, doc.TypeID, doc.FilePath, time.Now(), models.DocumentPending).
		Suffix("RETURNING document_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert document SQL")
		return 0, err
	}

	var id int64
	if err := r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing insert document query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single document.
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.ProjectDocument, error) {
	sqlStr, args, err := selectDocumentQuery().Where(squirrel.Eq{"document_id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get document by ID SQL")
		return nil, err
	}
	return scanDocument(r.db.Pool.QueryRow(ctx, sqlStr, args...))
}

// Replace removes the old row and inserts a fresh pending one for the
// same request and type, atomically. Returns the new document id.
func (r *DocumentRepository) Replace(ctx context.Context, old *models.ProjectDocument, newFilePath string) (int64, error) {
	var newID int64
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sqlStr, args, err := squirrel.Delete("project_documents").
			Where(squirrel.Eq{"document_id": old.ID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		cmdTag, err := tx.Exec(ctx, sqlStr, args...)
		if err != nil {
			logger.Error().Err(err).Msg("Error deleting replaced document")
			return err
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrDocumentNotFound
		}

		sqlStr, args, err = squirrel.Insert("project_documents").
			Columns("request_id", "type_id", "file_path", "submitted_at", "status").
			Values(old.RequestID, old.TypeID, newFilePath, time.Now(), models.DocumentPending).
			Suffix("RETURNING document_id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&newID); err != nil {
			logger.Error().Err(err).Msg("Error inserting replacement document")
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// SetStatus records a review decision. A nil reason clears any stored
// reject reason.
func (r *DocumentRepository) SetStatus(ctx context.Context, documentID int64, status models.DocumentStatus, reason *string) error {
	sqlStr, args, err := squirrel.Update("project_documents").
		Set("status", status).
		Set("reject_reason", helpers.GetNullString(reason)).
		Where(squirrel.Eq{"document_id": documentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set document status SQL")
		return err
	}
	cmdTag, err := r.db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing set document status query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// UpdateFileAndStatus swaps the stored artifact path along with the
// review status. Used for the returned-with-corrections decision.
func (r *DocumentRepository) UpdateFileAndStatus(ctx context.Context, documentID int64, filePath string, status models.DocumentStatus) error {
	sqlStr, args, err := squirrel.Update("project_documents").
		Set("file_path", filePath).
		Set("status", status).
		Set("reject_reason", nil).
		Where(squirrel.Eq{"document_id": documentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update document file SQL")
		return err
	}
	cmdTag, err := r.db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update document file query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// Delete removes a document row.
func (r *DocumentRepository) Delete(ctx context.Context, documentID int64) error {
	sqlStr, args, err := squirrel.Delete("project_documents").
		Where(squirrel.Eq{"document_id": documentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete document SQL")
		return err
	}
	cmdTag, err := r.db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete document query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// Checklist matches the full type catalog against the request's
// submissions. Every catalog type yields exactly one row.
func (r *DocumentRepository) Checklist(ctx context.Context, requestID int64) ([]*ChecklistRow, error) {
	sqlStr, args, err := squirrel.Select(
		"dt.type_id", "dt.type_name",
		"pd.document_id", "pd.file_path", "pd.submitted_at",
		"COALESCE(pd.status, 'missing')", "pd.reject_reason",
	).From("document_types dt").
		LeftJoin("project_documents pd ON pd.type_id = dt.type_id AND pd.request_id = ?", requestID).
		OrderBy("dt.type_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building checklist SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing checklist query")
		return nil, err
	}
	defer rows.Close()

	checklist := make([]*ChecklistRow, 0)
	for rows.Next() {
		var row ChecklistRow
		err := rows.Scan(
			&row.TypeID, &row.TypeName,
			&row.DocumentID, &row.FilePath, &row.SubmittedAt,
			&row.Status, &row.RejectReason,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning checklist row")
			return nil, err
		}
		checklist = append(checklist, &row)
	}
	return checklist, rows.Err()
}

// History retrieves every submission for a request, newest first,
// with type names.
func (r *DocumentRepository) History(ctx context.Context, requestID int64) ([]*DocumentDetails, error) {
	sqlStr, args, err := squirrel.Select(
		"pd.document_id", "pd.request_id", "pd.type_id", "pd.file_path",
		"pd.submitted_at", "pd.status", "pd.reject_reason", "dt.type_name",
	).From("project_documents pd").
		Join("document_types dt ON dt.type_id = pd.type_id").
		Where(squirrel.Eq{"pd.request_id": requestID}).
		OrderBy("pd.submitted_at DESC", "pd.document_id DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building document history SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing document history query")
		return nil, err
	}
	defer rows.Close()

	history := make([]*DocumentDetails, 0)
	for rows.Next() {
		var d DocumentDetails
		err := rows.Scan(
			&d.ID, &d.RequestID, &d.TypeID, &d.FilePath,
			&d.SubmittedAt, &d.Status, &d.RejectReason, &d.TypeName,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning document history row")
			return nil, err
		}
		history = append(history, &d)
	}
	return history, rows.Err()
}

// ApprovedTypeCount counts the distinct document types a request has an
// approved submission for.
func (r *DocumentRepository) ApprovedTypeCount(ctx context.Context, requestID int64) (int64, error) {
	sqlStr, args, err := squirrel.Select("count(DISTINCT type_id)").
		From("project_documents").
		Where(squirrel.Eq{"request_id": requestID, "status": models.DocumentApproved}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building approved type count SQL")
		return 0, err
	}

	var count int64
	if err := r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error executing approved type count query")
		return 0, err
	}
	return count, nil
}

// LatestApprovedByType resolves the most recent approved submission of
// one type for a request.
func (r *DocumentRepository) LatestApprovedByType(ctx context.Context, requestID, typeID int64) (*models.ProjectDocument, error) {
	sqlStr, args, err := selectDocumentQuery().
		Where(squirrel.Eq{"request_id": requestID, "type_id": typeID, "status": models.DocumentApproved}).
		OrderBy("document_id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building latest approved document SQL")
		return nil, err
	}
	return scanDocument(r.db.Pool.QueryRow(ctx, sqlStr, args...))
}

// SubmitterContact resolves the submitting student's email and username
// plus the document's type name, for review notifications.
func (r *DocumentRepository) SubmitterContact(ctx context.Context, documentID int64) (*SubmitterContact, error) {
	sqlStr, args, err := squirrel.Select("u.email", "u.username", "dt.type_name").
		From("project_documents pd").
		Join("project_requests pr ON pr.request_id = pd.request_id").
		Join("users u ON u.user_id = pr.student_id").
		Join("document_types dt ON dt.type_id = pd.type_id").
		Where(squirrel.Eq{"pd.document_id": documentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building submitter contact SQL")
		return nil, err
	}

	var contact SubmitterContact
	err = r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&contact.Email, &contact.Username, &contact.TypeName)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrDocumentNotFound
		}
		logger.Error().Err(err).Msg("Error executing submitter contact query")
		return nil, err
	}
	return &contact, nil
}
