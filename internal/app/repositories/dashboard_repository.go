package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/db"
	"github.com/ItsRyS/pms-server/internal/pkg/logger"
)

// DashboardCounters are the admin landing-page totals.
type DashboardCounters struct {
	ActiveProjects   int64 `json:"active_projects"`
	PendingRequests  int64 `json:"pending_requests"`
	PendingDocuments int64 `json:"pending_documents"`
}

// TypeDistributionRow counts released projects per project type.
type TypeDistributionRow struct {
	ProjectType string `json:"project_type"`
	Count       int64  `json:"count"`
}

// YearlyTrendRow counts released projects per calendar year.
type YearlyTrendRow struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// DashboardRepository aggregates workflow counters for the admin view.
type DashboardRepository struct {
	db *db.PostgresDB
}

// NewDashboardRepository creates a new instance of DashboardRepository.
func NewDashboardRepository(database *db.PostgresDB) *DashboardRepository {
	return &DashboardRepository{db: database}
}

func (r *DashboardRepository) scalar(ctx context.Context, builder squirrel.SelectBuilder) (int64, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building dashboard counter SQL")
		return 0, err
	}
	var count int64
	if err := r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error executing dashboard counter query")
		return 0, err
	}
	return count, nil
}

// Counters fetches the three admin totals.
func (r *DashboardRepository) Counters(ctx context.Context) (*DashboardCounters, error) {
	var counters DashboardCounters
	var err error

	counters.ActiveProjects, err = r.scalar(ctx, squirrel.Select("count(*)").
		From("project_release").
		Where(squirrel.Eq{"project_status": []models.ProjectStatus{models.ProjectOperate, models.ProjectSuccess}}).
		PlaceholderFormat(squirrel.Dollar))
	if err != nil {
		return nil, err
	}

	counters.PendingRequests, err = r.scalar(ctx, squirrel.Select("count(*)").
		From("project_requests").
		Where(squirrel.Eq{"status": models.RequestPending}).
		PlaceholderFormat(squirrel.Dollar))
	if err != nil {
		return nil, err
	}

	counters.PendingDocuments, err = r.scalar(ctx, squirrel.Select("count(*)").
		From("project_documents").
		Where(squirrel.Eq{"status": models.DocumentPending}).
		PlaceholderFormat(squirrel.Dollar))
	if err != nil {
		return nil, err
	}

	return &counters, nil
}

// TypeDistribution counts released projects grouped by type.
func (r *DashboardRepository) TypeDistribution(ctx context.Context) ([]*TypeDistributionRow, error) {
	sqlStr, args, err := squirrel.Select("project_type", "count(*)").
		From("project_release").
		GroupBy("project_type").
		OrderBy("count(*) DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building type distribution SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing type distribution query")
		return nil, err
	}
	defer rows.Close()

	distribution := make([]*TypeDistributionRow, 0)
	for rows.Next() {
		var row TypeDistributionRow
		if err := rows.Scan(&row.ProjectType, &row.Count); err != nil {
			logger.Error().Err(err).Msg("Error scanning type distribution row")
			return nil, err
		}
		distribution = append(distribution, &row)
	}
	return distribution, rows.Err()
}

// YearlyTrend counts released projects grouped by creation year.
func (r *DashboardRepository) YearlyTrend(ctx context.Context) ([]*YearlyTrendRow, error) {
	sqlStr, args, err := squirrel.Select("EXTRACT(YEAR FROM project_create_time)::int AS year", "count(*)").
		From("project_release").
		GroupBy("year").
		OrderBy("year ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building yearly trend SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing yearly trend query")
		return nil, err
	}
	defer rows.Close()

	trend := make([]*YearlyTrendRow, 0)
	for rows.Next() {
		var row YearlyTrendRow
		if err := rows.Scan(&row.Year, &row.Count); err != nil {
			logger.Error().Err(err).Msg("Error scanning yearly trend row")
			return nil, err
		}
		trend = append(trend, &row)
	}
	return trend, rows.Err()
}
