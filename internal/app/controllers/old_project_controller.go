package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ItsRyS/pms-server/internal/app/models/dto"
	"github.com/ItsRyS/pms-server/internal/app/services"
	"github.com/ItsRyS/pms-server/internal/middleware"
)

// OldProjectController handles the archive of past projects
type OldProjectController struct {
	archiveService services.OldProjectService
}

// NewOldProjectController creates a new OldProjectController
func NewOldProjectController(archiveService services.OldProjectService) *OldProjectController {
	return &OldProjectController{archiveService: archiveService}
}

// Create archives a past project with its report PDF.
func (c *OldProjectController) Create(ctx *gin.Context) {
	var req dto.CreateOldProjectRequest
	if err := ctx.ShouldBind(&req); err != nil {
		bindingError(ctx, err)
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A report file is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	project, err := c.archiveService.Create(ctx.Request.Context(), &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(project))
}

// List retrieves the archive.
func (c *OldProjectController) List(ctx *gin.Context) {
	projects, err := c.archiveService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(projects))
}

// Update rewrites an archive entry, optionally replacing the PDF.
func (c *OldProjectController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateOldProjectRequest
	if err := ctx.ShouldBind(&req); err != nil {
		bindingError(ctx, err)
		return
	}
	file, _ := ctx.FormFile("file")

	if err := c.archiveService.Update(ctx.Request.Context(), id, &req, file); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Old project updated"))
}

// Delete removes an archive entry.
func (c *OldProjectController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.archiveService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Old project deleted"))
}
