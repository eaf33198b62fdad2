package api

// UpdateUserRequest leaves the stored credential untouched when new_password
// is empty.
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Username    string `form:"username" validate:"required" example:"ana"`
	Email       string `form:"email" validate:"required,email" example:"ana@example.com"`
	NewPassword string `form:"new_password" example:""`
	Role        string `form:"role" example:"librarian"`
	Status      string `form:"status" example:"active"`
}
