package models

import "time"

// RequestStatus is the approval state of a project request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}

// ProjectRequest is a student-submitted project proposal awaiting an
// advisor/admin decision.
type ProjectRequest struct {
	ID          int64         `json:"request_id"`
	NameTH      string        `json:"project_name"`
	NameEN      string        `json:"project_name_eng"`
	ProjectType string        `json:"project_type"`
	AdvisorID   int64         `json:"advisor_id"`
	StudentID   int64         `json:"student_id"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// RosterEntry ties a student account to the request (later project)
// their group belongs to.
type RosterEntry struct {
	ID        int64  `json:"id"`
	RequestID int64  `json:"request_id"`
	StudentID int64  `json:"student_id"`
	ProjectID *int64 `json:"project_id,omitempty"`
}
