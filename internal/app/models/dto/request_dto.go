package dto

// CreateProjectRequestRequest is the payload for a new project proposal.
type CreateProjectRequestRequest struct {
	ProjectNameTH string  `json:"project_name" binding:"required"`
	ProjectNameEN string  `json:"project_name_eng" binding:"required"`
	ProjectType   string  `json:"project_type" binding:"required"`
	AdvisorID     int64   `json:"advisor_id" binding:"required"`
	StudentID     int64   `json:"student_id" binding:"required"`
	GroupMembers  []int64 `json:"group_members" binding:"required,min=1"`
}

// CreateProjectRequestResponse carries the id of the created request.
type CreateProjectRequestResponse struct {
	RequestID int64 `json:"request_id"`
}

// UpdateRequestStatusRequest is an approve/reject decision.
type UpdateRequestStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}
