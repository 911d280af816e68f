package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/db"
	"github.com/ItsRyS/pms-server/internal/pkg/apperrors"
	"github.com/ItsRyS/pms-server/internal/pkg/helpers"
	"github.com/ItsRyS/pms-server/internal/pkg/logger"
)

// TeacherRepository handles database operations for advisor profiles.
type TeacherRepository struct {
	db *db.PostgresDB
}

// NewTeacherRepository creates a new instance of TeacherRepository.
func NewTeacherRepository(database *db.PostgresDB) *TeacherRepository {
	return &TeacherRepository{db: database}
}

func selectTeacherQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"teacher_id", "teacher_name",
		"COALESCE(teacher_phone, '')", "teacher_email",
		"COALESCE(teacher_academic, '')", "COALESCE(teacher_expert, '')",
		"COALESCE(teacher_image, '')",
	).From("teacher_info").PlaceholderFormat(squirrel.Dollar)
}

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	var t models.Teacher
	err := row.Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &t.Academic, &t.Expert, &t.Image)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Msg("Error scanning teacher")
		return nil, err
	}
	return &t, nil
}

// Create inserts a new advisor profile.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) (int64, error) {
	sqlStr, args, err := squirrel.Insert("teacher_info").
		Columns("teacher_name", "teacher_phone", "teacher_email", "teacher_academic", "teacher_expert", "teacher_image").
		Values(
			teacher.Name,
			helpers.GetContentNullString(teacher.Phone),
			teacher.Email,
			helpers.GetContentNullString(teacher.Academic),
			helpers.GetContentNullString(teacher.Expert),
			helpers.GetContentNullString(teacher.Image),
		).
		Suffix("RETURNING teacher_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create teacher SQL")
		return 0, err
	}

	var id int64
	if err := r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create teacher query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single advisor profile.
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	sqlStr, args, err := selectTeacherQuery().Where(squirrel.Eq{"teacher_id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get teacher by ID SQL")
		return nil, err
	}
	return scanTeacher(r.db.Pool.QueryRow(ctx, sqlStr, args...))
}

// List retrieves every advisor profile ordered by name.
func (r *TeacherRepository) List(ctx context.Context) ([]*models.Teacher, error) {
	sqlStr, args, err := selectTeacherQuery().OrderBy("teacher_name ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list teachers SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list teachers query")
		return nil, err
	}
	defer rows.Close()

	teachers := make([]*models.Teacher, 0)
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

// Update rewrites an advisor profile. The image column is only touched
// when a new value is present.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	builder := squirrel.Update("teacher_info").
		Set("teacher_name", teacher.Name).
		Set("teacher_phone", helpers.GetContentNullString(teacher.Phone)).
		Set("teacher_email", teacher.Email).
		Set("teacher_academic", helpers.GetContentNullString(teacher.Academic)).
		Set("teacher_expert", helpers.GetContentNullString(teacher.Expert)).
		Where(squirrel.Eq{"teacher_id": teacher.ID}).
		PlaceholderFormat(squirrel.Dollar)
	if teacher.Image != "" {
		builder = builder.Set("teacher_image", teacher.Image)
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update teacher SQL")
		return err
	}
	cmdTag, err := r.db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update teacher query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// Delete removes an advisor profile.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("teacher_info").
		Where(squirrel.Eq{"teacher_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete teacher SQL")
		return err
	}
	cmdTag, err := r.db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete teacher query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}
