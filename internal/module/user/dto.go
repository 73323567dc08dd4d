package user

// UpdateUserRequest represents the input for updating a user.
type UpdateUserRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=admin consultant"`
}
