package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ItsRyS/pms-server/internal/app/models/dto"
	"github.com/ItsRyS/pms-server/internal/app/services"
	"github.com/ItsRyS/pms-server/internal/middleware"
)

// FormController handles downloadable document forms
type FormController struct {
	formService services.FormService
}

// NewFormController creates a new FormController
func NewFormController(formService services.FormService) *FormController {
	return &FormController{formService: formService}
}

// Upload stores a new downloadable form.
func (c *FormController) Upload(ctx *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}
	var req dto.UploadFormRequest
	if err := ctx.ShouldBind(&req); err != nil {
		bindingError(ctx, err)
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A form file is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	form, err := c.formService.Upload(ctx.Request.Context(), principal.UserID, &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(form))
}

// List retrieves every form.
func (c *FormController) List(ctx *gin.Context) {
	forms, err := c.formService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(forms))
}

// Delete removes a form.
func (c *FormController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.formService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Form deleted"))
}
