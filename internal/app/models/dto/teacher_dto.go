package dto

// TeacherRequest is the create/update payload for an advisor profile.
// The profile image arrives as a separate multipart file.
type TeacherRequest struct {
	Name     string `form:"teacher_name" binding:"required,min=2,max=100"`
	Phone    string `form:"teacher_phone"`
	Email    string `form:"teacher_email" binding:"required,email"`
	Academic string `form:"teacher_academic"`
	Expert   string `form:"teacher_expert"`
}
