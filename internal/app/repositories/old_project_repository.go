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

// OldProjectRepository handles database operations for the archive of
// past projects.
type OldProjectRepository struct {
	db *db.PostgresDB
}

// NewOldProjectRepository creates a new instance of OldProjectRepository.
func NewOldProjectRepository(database *db.PostgresDB) *OldProjectRepository {
	return &OldProjectRepository{db: database}
}

func selectOldProjectQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"old_id", "old_project_name_th", "old_project_name_eng",
		"project_type", "document_year", "file_path",
	).From("old_projects").PlaceholderFormat(squirrel.Dollar)
}

func scanOldProject(row pgx.Row) (*models.OldProject, error) {
	var p models.OldProject
	err := row.Scan(&p.ID, &p.NameTH, &p.NameEN, &p.ProjectType, &p.DocumentYear, &p.FilePath)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrOldProjectNotFound
		}
		logger.Error().Err(err).Msg("Error scanning old project")
		return nil, err
	}
	return &p, nil
}

// Create inserts a new archived project.
func (r *OldProjectRepository) Create(ctx context.Context, p *models.OldProject) (int64, error) {
	sqlStr, args, err := squirrel.Insert("old_projects").
		Columns("old_project_name_th", "old_project_name_eng", "project_type", "document_year", "file_path").
		Values(p.NameTH, p.NameEN, p.ProjectType, p.DocumentYear, p.FilePath).
		Suffix("RETURNING old_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create old project SQL")
		return 0, err
	}

	var id int64
	if err := r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create old project query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single archived project.
func (r *OldProjectRepository) GetByID(ctx context.Context, id int64) (*models.OldProject, error) {
	sqlStr, args, err := selectOldProjectQuery().Where(squirrel.Eq{"old_id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get old project SQL")
		return nil, err
	}
	return scanOldProject(r.db.Pool.QueryRow(ctx, sqlStr, args...))
}

// List retrieves the archive, newest document years first.
func (r *OldProjectRepository) List(ctx context.Context) ([]*models.OldProject, error) {
	sqlStr, args, err := selectOldProjectQuery().
		OrderBy("document_year DESC", "old_id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list old projects SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list old projects query")
		return nil, err
	}
	defer rows.Close()

	projects := make([]*models.OldProject, 0)
	for rows.Next() {
		p, err := scanOldProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update rewrites an archived project row.
func (r *OldProjectRepository) Update(ctx context.Context, p *models.OldProject) error {
	sqlStr, args, err := squirrel.Update("old_projects").
		Set("old_project_name_th", p.NameTH).
		Set("old_project_name_eng", p.NameEN).
		Set("project_type", p.ProjectType).
		Set("document_year", p.DocumentYear).
		Set("file_path", p.FilePath).
		Where(squirrel.Eq{"old_id": p.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update old project SQL")
		return err
	}
	cmdTag, err := r.db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update old project query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOldProjectNotFound
	}
	return nil
}

// Delete removes an archived project row.
func (r *OldProjectRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("old_projects").
		Where(squirrel.Eq{"old_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete old project SQL")
		return err
	}
	cmdTag, err := r.db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete old project query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOldProjectNotFound
	}
	return nil
}
