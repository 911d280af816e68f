package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/db"
	"github.com/ItsRyS/pms-server/internal/pkg/apperrors"
	"github.com/ItsRyS/pms-server/internal/pkg/logger"
)

// FormRepository handles database operations for downloadable forms.
type FormRepository struct {
	db *db.PostgresDB
}

// NewFormRepository creates a new instance of FormRepository.
func NewFormRepository(database *db.PostgresDB) *FormRepository {
	return &FormRepository{db: database}
}

func selectFormQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"doc_id", "doc_title", "doc_description", "doc_path", "uploaded_by", "upload_date",
	).From("document_forms").PlaceholderFormat(squirrel.Dollar)
}

func scanForm(row pgx.Row) (*models.DocumentForm, error) {
	var f models.DocumentForm
	err := row.Scan(&f.ID, &f.Title, &f.Description, &f.Path, &f.UploadedBy, &f.UploadDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrFormNotFound
		}
		logger.Error().Err(err).Msg("Error scanning document form")
		return nil, err
	}
	return &f, nil
}

// Create inserts a new downloadable form.
func (r *FormRepository) Create(ctx context.Context, form *models.DocumentForm) (int64, error) {
	sqlStr, args, err := squirrel.Insert("document_forms").
		Columns("doc_title", "doc_description", "doc_path", "uploaded_by", "upload_date").
		Values(form.Title, form.Description, form.Path, form.UploadedBy, time.Now()).
		Suffix("RETURNING doc_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create form SQL")
		return 0, err
	}

	var id int64
	if err := r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create form query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single form.
func (r *FormRepository) GetByID(ctx context.Context, id int64) (*models.DocumentForm, error) {
	sqlStr, args, err := selectFormQuery().Where(squirrel.Eq{"doc_id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get form SQL")
		return nil, err
	}
	return scanForm(r.db.Pool.QueryRow(ctx, sqlStr, args...))
}

// List retrieves every form, newest first.
func (r *FormRepository) List(ctx context.Context) ([]*models.DocumentForm, error) {
	sqlStr, args, err := selectFormQuery().OrderBy("upload_date DESC", "doc_id DESC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list forms SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list forms query")
		return nil, err
	}
	defer rows.Close()

	forms := make([]*models.DocumentForm, 0)
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	return forms, rows.Err()
}

// Delete removes a form row.
func (r *FormRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("document_forms").
		Where(squirrel.Eq{"doc_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete form SQL")
		return err
	}
	cmdTag, err := r.db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete form query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFormNotFound
	}
	return nil
}
