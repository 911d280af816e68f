package models

import "time"

// DocumentForm is a general downloadable form distributed to students,
// separate from the per-project document workflow.
type DocumentForm struct {
	ID          int64     `json:"doc_id"`
	Title       string    `json:"doc_title"`
	Description string    `json:"doc_description"`
	Path        string    `json:"doc_path"`
	UploadedBy  int64     `json:"uploaded_by"`
	UploadDate  time.Time `json:"upload_date"`
}
