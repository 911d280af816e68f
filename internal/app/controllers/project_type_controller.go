package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ItsRyS/pms-server/internal/app/models/dto"
	"github.com/ItsRyS/pms-server/internal/app/services"
	"github.com/ItsRyS/pms-server/internal/middleware"
)

// ProjectTypeController handles the project type catalog
type ProjectTypeController struct {
	typeService services.ProjectTypeService
}

// NewProjectTypeController creates a new ProjectTypeController
func NewProjectTypeController(typeService services.ProjectTypeService) *ProjectTypeController {
	return &ProjectTypeController{typeService: typeService}
}

// Create adds a catalog entry.
func (c *ProjectTypeController) Create(ctx *gin.Context) {
	var req dto.ProjectTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, err)
		return
	}

	pt, err := c.typeService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(pt))
}

// List retrieves the catalog.
func (c *ProjectTypeController) List(ctx *gin.Context) {
	types, err := c.typeService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(types))
}

// Update rewrites a catalog entry.
func (c *ProjectTypeController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ProjectTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, err)
		return
	}

	if err := c.typeService.Update(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Project type updated"))
}

// Delete removes a catalog entry.
func (c *ProjectTypeController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.typeService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Project type deleted"))
}
