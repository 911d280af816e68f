package dto

// CreateOldProjectRequest is the multipart payload for archiving a
// past project. The PDF file arrives separately.
type CreateOldProjectRequest struct {
	NameTH       string `form:"old_project_name_th" binding:"required"`
	NameEN       string `form:"old_project_name_eng" binding:"required"`
	ProjectType  string `form:"project_type" binding:"required"`
	DocumentYear int    `form:"document_year" binding:"required"`
}

// UpdateOldProjectRequest lists the archive fields the domain allows
// to change. Empty fields keep their stored value; a new file, when
// present, replaces the stored PDF.
type UpdateOldProjectRequest struct {
	NameTH       string `form:"old_project_name_th"`
	NameEN       string `form:"old_project_name_eng"`
	ProjectType  string `form:"project_type"`
	DocumentYear int    `form:"document_year"`
}
