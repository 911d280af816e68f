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

// ReleaseDetails is a released project joined with its advisor name and
// team member usernames.
type ReleaseDetails struct {
	models.ReleasedProject
	AdvisorName string `json:"teacher_name"`
	Members     string `json:"team_members"`
}

// ReleaseRepository handles database operations for released projects.
type ReleaseRepository struct {
	db *db.PostgresDB
}

// NewReleaseRepository creates a new instance of ReleaseRepository.
func NewReleaseRepository(database *db.PostgresDB) *ReleaseRepository {
	return &ReleaseRepository{db: database}
}

func selectReleaseDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"p.project_id", "p.project_name_th", "p.project_name_eng", "p.project_type",
		"p.project_status", "p.project_create_time", "p.advisor_id",
		"t.teacher_name",
		"COALESCE(string_agg(u.username, ', ' ORDER BY u.username), '')",
	).From("project_release p").
		Join("teacher_info t ON p.advisor_id = t.teacher_id").
		LeftJoin("students_projects sp ON sp.project_id = p.project_id").
		LeftJoin("users u ON u.user_id = sp.student_id").
		GroupBy("p.project_id", "t.teacher_name").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *ReleaseRepository) queryDetails(ctx context.Context, builder squirrel.SelectBuilder) ([]*ReleaseDetails, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building release details SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing release details query")
		return nil, err
	}
	defer rows.Close()

	projects := make([]*ReleaseDetails, 0)
	for rows.Next() {
		var d ReleaseDetails
		err := rows.Scan(
			&d.ID, &d.NameTH, &d.NameEN, &d.Type,
			&d.Status, &d.CreateTime, &d.AdvisorID,
			&d.AdvisorName, &d.Members,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning release details")
			return nil, err
		}
		projects = append(projects, &d)
	}
	return projects, rows.Err()
}

// ListActive retrieves every tracked project, newest first.
func (r *ReleaseRepository) ListActive(ctx context.Context) ([]*ReleaseDetails, error) {
	builder := selectReleaseDetailsQuery().
		Where(squirrel.Eq{"p.project_status": []models.ProjectStatus{
			models.ProjectOperate, models.ProjectSuccess, models.ProjectComplete,
		}}).
		OrderBy("p.project_id DESC")
	return r.queryDetails(ctx, builder)
}

// ListPendingReview retrieves the projects still in the operate state.
func (r *ReleaseRepository) ListPendingReview(ctx context.Context) ([]*ReleaseDetails, error) {
	builder := selectReleaseDetailsQuery().
		Where(squirrel.Eq{"p.project_status": models.ProjectOperate}).
		OrderBy("p.project_id DESC")
	return r.queryDetails(ctx, builder)
}

// GetByID retrieves a single released project.
func (r *ReleaseRepository) GetByID(ctx context.Context, projectID int64) (*models.ReleasedProject, error) {
	sqlStr, args, err := squirrel.Select(
		"project_id", "project_name_th", "project_name_eng", "project_type",
		"project_status", "project_create_time", "advisor_id",
	).From("project_release").
		Where(squirrel.Eq{"project_id": projectID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get release by ID SQL")
		return nil, err
	}

	var p models.ReleasedProject
	err = r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(
		&p.ID, &p.NameTH, &p.NameEN, &p.Type,
		&p.Status, &p.CreateTime, &p.AdvisorID,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrProjectNotFound
		}
		logger.Error().Err(err).Msg("Error executing get release by ID query")
		return nil, err
	}
	return &p, nil
}

// SetStatus moves a project to a new lifecycle state.
func (r *ReleaseRepository) SetStatus(ctx context.Context, projectID int64, status models.ProjectStatus) error {
	sqlStr, args, err := squirrel.Update("project_release").
		Set("project_status", status).
		Where(squirrel.Eq{"project_id": projectID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set project status SQL")
		return err
	}
	cmdTag, err := r.db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing set project status query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// LatestRequestID resolves the newest request tied to a project through
// the roster. A project without roster rows yields ErrRequestNotFound.
func (r *ReleaseRepository) LatestRequestID(ctx context.Context, projectID int64) (int64, error) {
	sqlStr, args, err := squirrel.Select("request_id").
		From("students_projects").
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("request_id DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building latest request ID SQL")
		return 0, err
	}

	var requestID int64
	err = r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&requestID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.ErrRequestNotFound
		}
		logger.Error().Err(err).Msg("Error executing latest request ID query")
		return 0, err
	}
	return requestID, nil
}
