package models

// Teacher represents an advisor profile.
type Teacher struct {
	ID       int64  `json:"teacher_id"`
	Name     string `json:"teacher_name"`
	Phone    string `json:"teacher_phone,omitempty"`
	Email    string `json:"teacher_email"`
	Academic string `json:"teacher_academic,omitempty"`
	Expert   string `json:"teacher_expert,omitempty"`
	Image    string `json:"teacher_image,omitempty"`
}
