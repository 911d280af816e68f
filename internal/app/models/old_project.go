package models

// OldProject is an archived past project with its report PDF.
type OldProject struct {
	ID           int64  `json:"old_id"`
	NameTH       string `json:"old_project_name_th"`
	NameEN       string `json:"old_project_name_eng"`
	ProjectType  string `json:"project_type"`
	DocumentYear int    `json:"document_year"`
	FilePath     string `json:"file_path"`
}
