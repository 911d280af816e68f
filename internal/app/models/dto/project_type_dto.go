package dto

// ProjectTypeRequest is the create/update payload for a project type.
type ProjectTypeRequest struct {
	Name        string `json:"project_type_name" binding:"required,min=2,max=150"`
	Description string `json:"project_type_description"`
}
