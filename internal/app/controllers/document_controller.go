package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ItsRyS/pms-server/internal/app/models/dto"
	"github.com/ItsRyS/pms-server/internal/app/services"
	"github.com/ItsRyS/pms-server/internal/middleware"
)

// DocumentController handles the document submission workflow
type DocumentController struct {
	documentService services.DocumentService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService services.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// Submit uploads a document for a request and document type.
func (c *DocumentController) Submit(ctx *gin.Context) {
	var req dto.SubmitDocumentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		bindingError(ctx, err)
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A document file is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	doc, err := c.documentService.Submit(ctx.Request.Context(), req.RequestID, req.TypeID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.DocumentUploadResponse{
		DocumentID: doc.ID,
		FileURL:    doc.FilePath,
	}))
}

// Resubmit replaces a previous submission with a new upload.
func (c *DocumentController) Resubmit(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A replacement file is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	doc, err := c.documentService.Resubmit(ctx.Request.Context(), id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.DocumentUploadResponse{
		DocumentID: doc.ID,
		FileURL:    doc.FilePath,
	}))
}

// Approve marks a submission approved.
func (c *DocumentController) Approve(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	err := c.documentService.Review(ctx.Request.Context(), id, services.ReviewInput{Decision: services.DecisionApprove})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Document approved"))
}

// Reject marks a submission rejected with a mandatory reason.
func (c *DocumentController) Reject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.RejectDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, err)
		return
	}

	err := c.documentService.Review(ctx.Request.Context(), id, services.ReviewInput{
		Decision: services.DecisionReject,
		Reason:   req.Reason,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Document rejected"))
}

// Return hands a corrected file back to the student.
func (c *DocumentController) Return(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A corrected file is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	err = c.documentService.Review(ctx.Request.Context(), id, services.ReviewInput{
		Decision:    services.DecisionReturn,
		Replacement: file,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Document returned"))
}

// Checklist reports submission state for every catalog type.
func (c *DocumentController) Checklist(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "requestId")
	if !ok {
		return
	}
	checklist, err := c.documentService.Checklist(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(checklist))
}

// History lists every submission for a request.
func (c *DocumentController) History(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "requestId")
	if !ok {
		return
	}
	history, err := c.documentService.History(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(history))
}

// Types lists the document type catalog.
func (c *DocumentController) Types(ctx *gin.Context) {
	types, err := c.documentService.Types(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(types))
}

// Delete removes a submission.
func (c *DocumentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.documentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Document deleted"))
}
