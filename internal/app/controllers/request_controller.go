package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ItsRyS/pms-server/internal/app/models/dto"
	"github.com/ItsRyS/pms-server/internal/app/services"
	"github.com/ItsRyS/pms-server/internal/middleware"
)

// RequestController handles the project request workflow
type RequestController struct {
	requestService services.RequestService
}

// NewRequestController creates a new RequestController
func NewRequestController(requestService services.RequestService) *RequestController {
	return &RequestController{requestService: requestService}
}

// Create submits a new project proposal for the caller's group.
func (c *RequestController) Create(ctx *gin.Context) {
	var req dto.CreateProjectRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, err)
		return
	}

	id, err := c.requestService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.CreateProjectRequestResponse{RequestID: id}))
}

// ListMine lists the requests the caller has submitted.
func (c *RequestController) ListMine(ctx *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(ctx)
	requests, err := c.requestService.ListForStudent(ctx.Request.Context(), principal.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// ListActiveMine lists the pending/approved requests the caller is a
// roster member of.
func (c *RequestController) ListActiveMine(ctx *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(ctx)
	requests, err := c.requestService.ActiveRequestsFor(ctx.Request.Context(), principal.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// ListAll lists every request with advisor and group member names.
func (c *RequestController) ListAll(ctx *gin.Context) {
	requests, err := c.requestService.ListAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// UpdateStatus applies an approve or reject decision to a request.
func (c *RequestController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateRequestStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, err)
		return
	}

	if err := c.requestService.SetStatus(ctx.Request.Context(), id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Request "+req.Status))
}

// Delete removes a request and its roster.
func (c *RequestController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.requestService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Request deleted"))
}
