package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/app/repositories"
	"github.com/ItsRyS/pms-server/internal/db"
	"github.com/ItsRyS/pms-server/internal/pkg/apperrors"
	"github.com/ItsRyS/pms-server/internal/pkg/auth"
)

// documentTypeCatalog is the required submission checklist. Entry 16
// is the complete report the release registry resolves for finished
// projects; the ids are stable because the workflow refers to them.
var documentTypeCatalog = []models.DocumentType{
	{ID: 1, Name: "Project proposal (IT01)"},
	{ID: 2, Name: "Advisor acceptance (IT02)"},
	{ID: 3, Name: "Topic examination request (IT03)"},
	{ID: 4, Name: "Topic examination result (IT04)"},
	{ID: 5, Name: "Chapter 1 draft"},
	{ID: 6, Name: "Chapter 2 draft"},
	{ID: 7, Name: "Chapter 3 draft"},
	{ID: 8, Name: "Progress examination request (IT05)"},
	{ID: 9, Name: "Progress examination result (IT06)"},
	{ID: 10, Name: "Chapter 4 draft"},
	{ID: 11, Name: "Chapter 5 draft"},
	{ID: 12, Name: "Final examination request (IT07)"},
	{ID: 13, Name: "Final examination result (IT08)"},
	{ID: 14, Name: "Revised report submission (IT09)"},
	{ID: 15, Name: "Publicity material"},
	{ID: 16, Name: "Complete report (PDF)"},
}

var defaultProjectTypes = []string{
	"Web Application",
	"Mobile Application",
	"Internet of Things",
	"Data Analytics",
	"Game Development",
}

// CreateDefaultData seeds the document type catalog, the default
// project types and the initial admin account. Safe to run on every
// startup.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	var finalErr error

	if err := seedDocumentTypes(ctx, database); err != nil {
		lgr.Error().Err(err).Msg("Error seeding document types")
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedProjectTypes(ctx, database); err != nil {
		lgr.Error().Err(err).Msg("Error seeding project types")
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedAdminUser(ctx, database, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error seeding admin user")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func seedDocumentTypes(ctx context.Context, database *db.PostgresDB) error {
	for _, dt := range documentTypeCatalog {
		_, err := database.Pool.Exec(ctx, `
			INSERT INTO document_types (type_id, type_name)
			VALUES ($1, $2)
			ON CONFLICT (type_id) DO NOTHING`, dt.ID, dt.Name)
		if err != nil {
			return err
		}
	}
	// Keep the sequence ahead of the fixed catalog ids.
	_, err := database.Pool.Exec(ctx, `
		SELECT setval(pg_get_serial_sequence('document_types', 'type_id'),
			(SELECT MAX(type_id) FROM document_types))`)
	return err
}

func seedProjectTypes(ctx context.Context, database *db.PostgresDB) error {
	for _, name := range defaultProjectTypes {
		_, err := database.Pool.Exec(ctx, `
			INSERT INTO project_types (project_type_name)
			SELECT $1
			WHERE NOT EXISTS (SELECT 1 FROM project_types WHERE project_type_name = $1)`, name)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedAdminUser(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(database)

	exists, err := userRepo.EmailExists(ctx, "admin@itpms.local")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword("admin1234")
	if err != nil {
		return err
	}

	_, err = userRepo.Create(ctx, &models.User{
		Username: "admin",
		Email:    "admin@itpms.local",
		Password: hashed,
		Role:     models.RoleAdmin,
	})
	if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		return err
	}
	lgr.Info().Msg("Default admin account created (admin@itpms.local)")
	return nil
}
