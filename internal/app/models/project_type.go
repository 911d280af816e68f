package models

// ProjectType is a catalog entry used by request forms.
type ProjectType struct {
	ID          int64  `json:"project_type_id"`
	Name        string `json:"project_type_name"`
	Description string `json:"project_type_description,omitempty"`
}
