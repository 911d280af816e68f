package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/db"
	"github.com/ItsRyS/pms-server/internal/pkg/apperrors"
	"github.com/ItsRyS/pms-server/internal/pkg/logger"
)

// DocumentTypeRepository handles the document type catalog.
type DocumentTypeRepository struct {
	db *db.PostgresDB
}

// NewDocumentTypeRepository creates a new instance of DocumentTypeRepository.
func NewDocumentTypeRepository(database *db.PostgresDB) *DocumentTypeRepository {
	return &DocumentTypeRepository{db: database}
}

// List retrieves the full catalog ordered by id.
func (r *DocumentTypeRepository) List(ctx context.Context) ([]*models.DocumentType, error) {
	sqlStr, args, err := squirrel.Select("type_id", "type_name").
		From("document_types").
		OrderBy("type_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list document types SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list document types query")
		return nil, err
	}
	defer rows.Close()

	types := make([]*models.DocumentType, 0)
	for rows.Next() {
		var t models.DocumentType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			logger.Error().Err(err).Msg("Error scanning document type")
			return nil, err
		}
		types = append(types, &t)
	}
	return types, rows.Err()
}

// GetByID retrieves one catalog entry.
func (r *DocumentTypeRepository) GetByID(ctx context.Context, id int64) (*models.DocumentType, error) {
	sqlStr, args, err := squirrel.Select("type_id", "type_name").
		From("document_types").
		Where(squirrel.Eq{"type_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get document type SQL")
		return nil, err
	}

	var t models.DocumentType
	err = r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&t.ID, &t.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrDocumentTypeNotFound
		}
		logger.Error().Err(err).Msg("Error executing get document type query")
		return nil, err
	}
	return &t, nil
}

// Count returns the catalog size, the completion denominator.
func (r *DocumentTypeRepository) Count(ctx context.Context) (int64, error) {
	sqlStr, args, err := squirrel.Select("count(*)").
		From("document_types").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count document types SQL")
		return 0, err
	}

	var count int64
	if err := r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error executing count document types query")
		return 0, err
	}
	return count, nil
}
