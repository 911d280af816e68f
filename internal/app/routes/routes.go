package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ItsRyS/pms-server/internal/app/controllers"
	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/middleware"
)

// Controllers bundles every controller the route table needs.
type Controllers struct {
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Teacher     *controllers.TeacherController
	ProjectType *controllers.ProjectTypeController
	Request     *controllers.RequestController
	Document    *controllers.DocumentController
	Release     *controllers.ReleaseController
	Form        *controllers.FormController
	OldProject  *controllers.OldProjectController
	Dashboard   *controllers.DashboardController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	v1.GET("/teachers", c.Teacher.List)
	v1.GET("/teachers/:id", c.Teacher.GetByID)
	v1.GET("/project-types", c.ProjectType.List)
	v1.GET("/old-projects", c.OldProject.List)
	v1.GET("/document-forms", c.Form.List)
	v1.GET("/projects", c.Release.ListActive)
	v1.GET("/projects/:id/complete-report", c.Release.CompleteReport)

	// Authenticated routes
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", c.Auth.Profile)
		authenticated.POST("/users/profile-image", c.User.UploadProfileImage)

		requests := authenticated.Group("/project-requests")
		{
			requests.POST("", c.Request.Create)
			requests.GET("/mine", c.Request.ListMine)
			requests.GET("/active", c.Request.ListActiveMine)
		}

		documents := authenticated.Group("/project-documents")
		{
			documents.POST("", c.Document.Submit)
			documents.PUT("/:id/resubmit", c.Document.Resubmit)
			documents.GET("/types", c.Document.Types)
			documents.GET("/checklist/:requestId", c.Document.Checklist)
			documents.GET("/history/:requestId", c.Document.History)
		}

		// Staff routes
		staff := authenticated.Group("")
		staff.Use(authMiddleware.RoleRequired(models.RoleTeacher, models.RoleAdmin))
		{
			staff.GET("/project-requests", c.Request.ListAll)
			staff.PUT("/project-requests/:id/status", c.Request.UpdateStatus)

			staff.GET("/projects/pending-review", c.Release.ListPendingReview)
			staff.GET("/projects/:id/unapproved-documents", c.Release.UnapprovedDocuments)
			staff.PUT("/projects/:id/complete", c.Release.MarkComplete)

			staff.PUT("/project-documents/:id/approve", c.Document.Approve)
			staff.PUT("/project-documents/:id/reject", c.Document.Reject)
			staff.PUT("/project-documents/:id/return", c.Document.Return)
		}

		// Admin routes
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/dashboard", c.Dashboard.Overview)

			admin.POST("/users", c.User.Create)
			admin.GET("/users", c.User.List)
			admin.GET("/users/:id", c.User.GetByID)
			admin.PUT("/users/:id", c.User.Update)
			admin.DELETE("/users/:id", c.User.Delete)

			admin.POST("/teachers", c.Teacher.Create)
			admin.PUT("/teachers/:id", c.Teacher.Update)
			admin.DELETE("/teachers/:id", c.Teacher.Delete)

			admin.POST("/project-types", c.ProjectType.Create)
			admin.PUT("/project-types/:id", c.ProjectType.Update)
			admin.DELETE("/project-types/:id", c.ProjectType.Delete)

			admin.POST("/document-forms", c.Form.Upload)
			admin.DELETE("/document-forms/:id", c.Form.Delete)

			admin.POST("/old-projects", c.OldProject.Create)
			admin.PUT("/old-projects/:id", c.OldProject.Update)
			admin.DELETE("/old-projects/:id", c.OldProject.Delete)

			admin.DELETE("/project-requests/:id", c.Request.Delete)
			admin.DELETE("/project-documents/:id", c.Document.Delete)
		}
	}
}
