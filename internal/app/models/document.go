package models

import "time"

// DocumentStatus is the review state of a submitted project document.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
	DocumentReturned DocumentStatus = "returned"
)

// DocumentStatusMissing is reported in checklists for types that have
// no submission yet. It never appears on a stored row.
const DocumentStatusMissing = "missing"

// CompleteReportTypeID is the distinguished catalog entry for the
// final complete report, the document resolved for finished projects.
const CompleteReportTypeID int64 = 16

// DocumentType is a catalog entry describing a required submission
// category. Effectively static reference data.
type DocumentType struct {
	ID   int64  `json:"type_id"`
	Name string `json:"type_name"`
}

// ProjectDocument is one submitted artifact for a request. Resubmission
// replaces the row; review decisions mutate status in place.
type ProjectDocument struct {
	ID           int64          `json:"document_id"`
	RequestID    int64          `json:"request_id"`
	TypeID       int64          `json:"type_id"`
	FilePath     string         `json:"file_path"`
	SubmittedAt  time.Time      `json:"submitted_at"`
	Status       DocumentStatus `json:"status"`
	RejectReason *string        `json:"reject_reason,omitempty"`
}
