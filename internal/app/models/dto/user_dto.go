package dto

// CreateUserRequest is the admin payload for creating an account.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=student teacher admin"`
}

// UpdateUserRequest lists exactly the fields the domain allows to
// change. Password is optional; empty means keep the current hash.
type UpdateUserRequest struct {
	Username string `json:"username" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=student teacher admin"`
	Password string `json:"password" binding:"omitempty,min=8"`
}
