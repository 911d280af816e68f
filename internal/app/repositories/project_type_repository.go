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

// ProjectTypeRepository handles the project type catalog.
type ProjectTypeRepository struct {
	db *db.PostgresDB
}

// NewProjectTypeRepository creates a new instance of ProjectTypeRepository.
func NewProjectTypeRepository(database *db.PostgresDB) *ProjectTypeRepository {
	return &ProjectTypeRepository{db: database}
}

func selectProjectTypeQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"project_type_id", "project_type_name",
		"COALESCE(project_type_description, '')",
	).From("project_types").PlaceholderFormat(squirrel.Dollar)
}

func scanProjectType(row pgx.Row) (*models.ProjectType, error) {
	var t models.ProjectType
	err := row.Scan(&t.ID, &t.Name, &t.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrProjectTypeNotFound
		}
		logger.Error().Err(err).Msg("Error scanning project type")
		return nil, err
	}
	return &t, nil
}

// Create inserts a new project type.
func (r *ProjectTypeRepository) Create(ctx context.Context, pt *models.ProjectType) (int64, error) {
	sqlStr, args, err := squirrel.Insert("project_types").
		Columns("project_type_name", "project_type_description").
		Values(pt.Name, pt.Description).
		Suffix("RETURNING project_type_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create project type SQL")
		return 0, err
	}

	var id int64
	if err := r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create project type query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single project type.
func (r *ProjectTypeRepository) GetByID(ctx context.Context, id int64) (*models.ProjectType, error) {
	sqlStr, args, err := selectProjectTypeQuery().Where(squirrel.Eq{"project_type_id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get project type SQL")
		return nil, err
	}
	return scanProjectType(r.db.Pool.QueryRow(ctx, sqlStr, args...))
}

// List retrieves every project type ordered by id.
func (r *ProjectTypeRepository) List(ctx context.Context) ([]*models.ProjectType, error) {
	sqlStr, args, err := selectProjectTypeQuery().OrderBy("project_type_id ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list project types SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list project types query")
		return nil, err
	}
	defer rows.Close()

	types := make([]*models.ProjectType, 0)
	for rows.Next() {
		t, err := scanProjectType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// Update rewrites a project type.
func (r *ProjectTypeRepository) Update(ctx context.Context, pt *models.ProjectType) error {
	sqlStr, args, err := squirrel.Update("project_types").
		Set("project_type_name", pt.Name).
		Set("project_type_description", pt.Description).
		Where(squirrel.Eq{"project_type_id": pt.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update project type SQL")
		return err
	}
	cmdTag, err := r.db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update project type query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectTypeNotFound
	}
	return nil
}

// Delete removes a project type.
func (r *ProjectTypeRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("project_types").
		Where(squirrel.Eq{"project_type_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete project type SQL")
		return err
	}
	cmdTag, err := r.db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete project type query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectTypeNotFound
	}
	return nil
}
