package models

import "time"

// ProjectStatus is the operational state of a released project.
type ProjectStatus string

const (
	ProjectOperate  ProjectStatus = "operate"
	ProjectSuccess  ProjectStatus = "success"
	ProjectComplete ProjectStatus = "complete"
)

// ReleasedProject is an approved project tracked separately from its
// originating request. Created exactly once per approved request.
type ReleasedProject struct {
	ID         int64         `json:"project_id"`
	NameTH     string        `json:"project_name_th"`
	NameEN     string        `json:"project_name_eng"`
	Type       string        `json:"project_type"`
	Status     ProjectStatus `json:"project_status"`
	CreateTime time.Time     `json:"project_create_time"`
	AdvisorID  int64         `json:"advisor_id"`
}
