package dto

// SubmitDocumentRequest carries the multipart form fields that
// accompany a document upload. The file itself arrives separately.
type SubmitDocumentRequest struct {
	RequestID int64 `form:"request_id" binding:"required"`
	TypeID    int64 `form:"type_id" binding:"required"`
}

// RejectDocumentRequest carries the mandatory reviewer reason.
type RejectDocumentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DocumentUploadResponse reports where the stored artifact lives.
type DocumentUploadResponse struct {
	DocumentID int64  `json:"document_id"`
	FileURL    string `json:"file_url"`
}

// CompleteReportResponse carries the resolved final report URL.
type CompleteReportResponse struct {
	DocumentPath string `json:"documentPath"`
}
