package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ItsRyS/pms-server/internal/app/models/dto"
	"github.com/ItsRyS/pms-server/internal/app/services"
	"github.com/ItsRyS/pms-server/internal/middleware"
)

// ReleaseController handles released project operations
type ReleaseController struct {
	releaseService services.ReleaseService
}

// NewReleaseController creates a new ReleaseController
func NewReleaseController(releaseService services.ReleaseService) *ReleaseController {
	return &ReleaseController{releaseService: releaseService}
}

// ListActive lists every tracked project.
func (c *ReleaseController) ListActive(ctx *gin.Context) {
	projects, err := c.releaseService.ListActive(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(projects))
}

// ListPendingReview lists projects still in the operate state.
func (c *ReleaseController) ListPendingReview(ctx *gin.Context) {
	projects, err := c.releaseService.ListPendingReview(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(projects))
}

// MarkComplete closes a project once its document set is approved.
func (c *ReleaseController) MarkComplete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.releaseService.MarkComplete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Project completed"))
}

// CompleteReport resolves the final report URL of a completed project.
func (c *ReleaseController) CompleteReport(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	url, err := c.releaseService.CompleteReportURL(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CompleteReportResponse{DocumentPath: url}))
}

// UnapprovedDocuments lists the checklist rows still blocking
// completion.
func (c *ReleaseController) UnapprovedDocuments(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	rows, err := c.releaseService.UnapprovedDocuments(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}
