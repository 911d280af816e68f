package services

import (
	"github.com/ItsRyS/pms-server/internal/app/repositories"
	"github.com/ItsRyS/pms-server/internal/pkg/auth"
	"github.com/ItsRyS/pms-server/internal/pkg/email"
	"github.com/ItsRyS/pms-server/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService        AuthService
	UserService        UserService
	TeacherService     TeacherService
	ProjectTypeService ProjectTypeService
	RequestService     RequestService
	DocumentService    DocumentService
	ReleaseService     ReleaseService
	FormService        FormService
	OldProjectService  OldProjectService
	DashboardService   DashboardService
}

// NewServices wires every service onto the repositories and the shared
// infrastructure.
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	storage filestorage.Storage,
	notifier email.Notifier,
) *Services {
	documentService := NewDocumentService(
		repos.DocumentRepository,
		repos.DocumentTypeRepository,
		repos.RequestRepository,
		storage,
		notifier,
	)
	return &Services{
		AuthService:        NewAuthService(repos.UserRepository, jwtService),
		UserService:        NewUserService(repos.UserRepository, storage),
		TeacherService:     NewTeacherService(repos.TeacherRepository, storage),
		ProjectTypeService: NewProjectTypeService(repos.ProjectTypeRepository),
		RequestService:     NewRequestService(repos.RequestRepository, storage),
		DocumentService:    documentService,
		ReleaseService: NewReleaseService(
			repos.ReleaseRepository,
			repos.DocumentRepository,
			documentService,
		),
		FormService:       NewFormService(repos.FormRepository, storage),
		OldProjectService: NewOldProjectService(repos.OldProjectRepository, storage),
		DashboardService:  NewDashboardService(repos.DashboardRepository),
	}
}
