package dto

// UploadFormRequest is the multipart payload for a downloadable form.
type UploadFormRequest struct {
	Title       string `form:"doc_title" binding:"required"`
	Description string `form:"doc_description" binding:"required"`
}
