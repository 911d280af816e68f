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

// RequestDetails is a project request joined with its advisor name and
// the usernames of every roster member.
type RequestDetails struct {
	models.ProjectRequest
	AdvisorName string `json:"teacher_name"`
	Members     string `json:"group_members"`
}

// RequestRepository handles database operations for project requests
// and their roster rows.
type RequestRepository struct {
	db *db.PostgresDB
}

// NewRequestRepository creates a new instance of RequestRepository.
func NewRequestRepository(database *db.PostgresDB) *RequestRepository {
	return &RequestRepository{db: database}
}

func scanRequest(row pgx.Row) (*models.ProjectRequest, error) {
	var req models.ProjectRequest
	err := row.Scan(
		&req.ID, &req.NameTH, &req.NameEN, &req.ProjectType,
		&req.AdvisorID, &req.StudentID, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrRequestNotFound
		}
		logger.Error().Err(err).Msg("Error scanning project request")
		return nil, err
	}
	return &req, nil
}

func selectRequestQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"request_id", "project_name", "project_name_eng", "project_type",
		"advisor_id", "student_id", "status", "created_at", "updated_at",
	).From("project_requests").PlaceholderFormat(squirrel.Dollar)
}

// ActiveStudentIDs returns the subset of studentIDs that already belong
// to a pending or approved request.
func (r *RequestRepository) ActiveStudentIDs(ctx context.Context, studentIDs []int64) ([]int64, error) {
	sqlStr, args, err := squirrel.Select("DISTINCT sp.student_id").
		From("students_projects sp").
		Join("project_requests pr ON sp.request_id = pr.request_id").
		Where(squirrel.Eq{"sp.student_id": studentIDs}).
		Where(squirrel.Eq{"pr.status": []models.RequestStatus{models.RequestPending, models.RequestApproved}}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building active student ids SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing active student ids query")
		return nil, err
	}
	defer rows.Close()

	busy := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			logger.Error().Err(err).Msg("Error scanning active student id")
			return nil, err
		}
		busy = append(busy, id)
	}
	return busy, rows.Err()
}

// Create inserts a new pending request together with one roster row per
// group member, atomically.
func (r *RequestRepository) Create(ctx context.Context, req *models.ProjectRequest, members []int64) (int64, error) {
	var requestID int64
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sqlStr, args, err := squirrel.Insert("project_requests").
			Columns("project_name", "project_name_eng", "project_type", "advisor_id", "student_id", "status").
			Values(req.NameTH, req.NameEN, req.ProjectType, req.AdvisorID, req.StudentID, models.RequestPending).
			Suffix("RETURNING request_id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&requestID); err != nil {
			logger.Error().Err(err).Msg("Error inserting project request")
			return err
		}

		rosterInsert := squirrel.Insert("students_projects").
			Columns("request_id", "student_id").
			PlaceholderFormat(squirrel.Dollar)
		for _, studentID := range members {
			rosterInsert = rosterInsert.Values(requestID, studentID)
		}
		sqlStr, args, err = rosterInsert.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			logger.Error().Err(err).Msg("Error inserting roster rows")
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return requestID, nil
}

// GetByID retrieves a single project request.
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.ProjectRequest, error) {
	sqlStr, args, err := selectRequestQuery().Where(squirrel.Eq{"request_id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get request by ID SQL")
		return nil, err
	}
	return scanRequest(r.db.Pool.QueryRow(ctx, sqlStr, args...))
}

// ListByStudent retrieves every request a student belongs to via the
// roster, newest first, regardless of status. Group members see the
// request even when someone else submitted it.
func (r *RequestRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.ProjectRequest, error) {
	sqlStr, args, err := squirrel.Select(
		"pr.request_id", "pr.project_name", "pr.project_name_eng", "pr.project_type",
		"pr.advisor_id", "pr.student_id", "pr.status", "pr.created_at", "pr.updated_at",
	).From("project_requests pr").
		Join("students_projects sp ON sp.request_id = pr.request_id").
		Where(squirrel.Eq{"sp.student_id": studentID}).
		OrderBy("pr.request_id DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list requests by student SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list requests by student query")
		return nil, err
	}
	defer rows.Close()

	requests := make([]*models.ProjectRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// ActiveByStudent retrieves the pending/approved requests a student
// belongs to via the roster.
func (r *RequestRepository) ActiveByStudent(ctx context.Context, studentID int64) ([]*models.ProjectRequest, error) {
	sqlStr, args, err := squirrel.Select(
		"pr.request_id", "pr.project_name", "pr.project_name_eng", "pr.project_type",
		"pr.advisor_id", "pr.student_id", "pr.status", "pr.created_at", "pr.updated_at",
	).From("project_requests pr").
		Join("students_projects sp ON sp.request_id = pr.request_id").
		Where(squirrel.Eq{"sp.student_id": studentID}).
		Where(squirrel.Eq{"pr.status": []models.RequestStatus{models.RequestPending, models.RequestApproved}}).
		OrderBy("pr.request_id DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building active requests by student SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing active requests by student query")
		return nil, err
	}
	defer rows.Close()

	requests := make([]*models.ProjectRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// ListAll retrieves every request with its advisor name and the
// usernames of all roster members.
func (r *RequestRepository) ListAll(ctx context.Context) ([]*RequestDetails, error) {
	sqlStr, args, err := squirrel.Select(
		"pr.request_id", "pr.project_name", "pr.project_name_eng", "pr.project_type",
		"pr.advisor_id", "pr.student_id", "pr.status", "pr.created_at", "pr.updated_at",
		"t.teacher_name",
		"COALESCE(string_agg(u.username, ', ' ORDER BY u.username), '')",
	).From("project_requests pr").
		Join("teacher_info t ON pr.advisor_id = t.teacher_id").
		LeftJoin("students_projects sp ON sp.request_id = pr.request_id").
		LeftJoin("users u ON u.user_id = sp.student_id").
		GroupBy("pr.request_id", "t.teacher_name").
		OrderBy("pr.request_id DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list all requests SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list all requests query")
		return nil, err
	}
	defer rows.Close()

	details := make([]*RequestDetails, 0)
	for rows.Next() {
		var d RequestDetails
		err := rows.Scan(
			&d.ID, &d.NameTH, &d.NameEN, &d.ProjectType,
			&d.AdvisorID, &d.StudentID, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.AdvisorName, &d.Members,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning request details")
			return nil, err
		}
		details = append(details, &d)
	}
	return details, rows.Err()
}

// Approve marks the request approved, releases it as a project in the
// operate state and repoints the roster at the new project. Returns the
// released project id.
func (r *RequestRepository) Approve(ctx context.Context, requestID int64) (int64, error) {
	var projectID int64
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sqlStr, args, err := selectRequestQuery().
			Where(squirrel.Eq{"request_id": requestID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return err
		}
		req, err := scanRequest(tx.QueryRow(ctx, sqlStr, args...))
		if err != nil {
			return err
		}

		sqlStr, args, err = squirrel.Update("project_requests").
			Set("status", models.RequestApproved).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"request_id": requestID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			logger.Error().Err(err).Msg("Error updating request status to approved")
			return err
		}

		sqlStr, args, err = squirrel.Insert("project_release").
			Columns("project_name_th", "project_name_eng", "project_type", "project_status", "project_create_time", "advisor_id").
			Values(req.NameTH, req.NameEN, req.ProjectType, models.ProjectOperate, time.Now(), req.AdvisorID).
			Suffix("RETURNING project_id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&projectID); err != nil {
			logger.Error().Err(err).Msg("Error inserting project release")
			return err
		}

		sqlStr, args, err = squirrel.Update("students_projects").
			Set("project_id", projectID).
			Where(squirrel.Eq{"request_id": requestID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			logger.Error().Err(err).Msg("Error repointing roster at released project")
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return projectID, nil
}

// Reject marks the request rejected and frees its members: any release
// reachable through the roster is removed along with the roster rows
// themselves.
func (r *RequestRepository) Reject(ctx context.Context, requestID int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sqlStr, args, err := squirrel.Update("project_requests").
			Set("status", models.RequestRejected).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"request_id": requestID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		cmdTag, err := tx.Exec(ctx, sqlStr, args...)
		if err != nil {
			logger.Error().Err(err).Msg("Error updating request status to rejected")
			return err
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrRequestNotFound
		}

		sqlStr, args, err = squirrel.Delete("project_release").
			Where("project_id IN (SELECT project_id FROM students_projects WHERE request_id = ? AND project_id IS NOT NULL)", requestID).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			logger.Error().Err(err).Msg("Error deleting released project for rejected request")
			return err
		}

		sqlStr, args, err = squirrel.Delete("students_projects").
			Where(squirrel.Eq{"request_id": requestID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			logger.Error().Err(err).Msg("Error deleting roster rows for rejected request")
			return err
		}
		return nil
	})
}

// Delete removes a request together with its document rows and roster
// rows. Returns the file paths of the removed documents so the caller
// can clean up their stored artifacts after the transaction commits.
func (r *RequestRepository) Delete(ctx context.Context, requestID int64) ([]string, error) {
	filePaths := make([]string, 0)
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sqlStr, args, err := squirrel.Select("file_path").
			From("project_documents").
			Where(squirrel.Eq{"request_id": requestID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		rows, err := tx.Query(ctx, sqlStr, args...)
		if err != nil {
			logger.Error().Err(err).Msg("Error querying document paths for request delete")
			return err
		}
		for rows.Next() {
			var path string
			if err := rows.Scan(&path); err != nil {
				rows.Close()
				return err
			}
			filePaths = append(filePaths, path)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		sqlStr, args, err = squirrel.Delete("project_documents").
			Where(squirrel.Eq{"request_id": requestID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			logger.Error().Err(err).Msg("Error deleting document rows for request")
			return err
		}

		sqlStr, args, err = squirrel.Delete("students_projects").
			Where(squirrel.Eq{"request_id": requestID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			logger.Error().Err(err).Msg("Error deleting roster rows")
			return err
		}

		sqlStr, args, err = squirrel.Delete("project_requests").
			Where(squirrel.Eq{"request_id": requestID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		cmdTag, err := tx.Exec(ctx, sqlStr, args...)
		if err != nil {
			logger.Error().Err(err).Msg("Error deleting project request")
			return err
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrRequestNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return filePaths, nil
}
