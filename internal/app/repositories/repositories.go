package repositories

import (
	"github.com/ItsRyS/pms-server/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TeacherRepository      *TeacherRepository
	ProjectTypeRepository  *ProjectTypeRepository
	RequestRepository      *RequestRepository
	DocumentRepository     *DocumentRepository
	DocumentTypeRepository *DocumentTypeRepository
	ReleaseRepository      *ReleaseRepository
	FormRepository         *FormRepository
	OldProjectRepository   *OldProjectRepository
	DashboardRepository    *DashboardRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(database),
		TeacherRepository:      NewTeacherRepository(database),
		ProjectTypeRepository:  NewProjectTypeRepository(database),
		RequestRepository:      NewRequestRepository(database),
		DocumentRepository:     NewDocumentRepository(database),
		DocumentTypeRepository: NewDocumentTypeRepository(database),
		ReleaseRepository:      NewReleaseRepository(database),
		FormRepository:         NewFormRepository(database),
		OldProjectRepository:   NewOldProjectRepository(database),
		DashboardRepository:    NewDashboardRepository(database),
	}
}
