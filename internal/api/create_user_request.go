package api

// CreateUserRequest accepts role and status in either the operator vocabulary
// ("Student", "Librarian") or the storage one; the service normalizes them.
// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Username string `form:"username" validate:"required" example:"ana"`
	Email    string `form:"email" validate:"required,email" example:"ana@example.com"`
	Password string `form:"password" validate:"required" example:"Secret123!"`
	Role     string `form:"role" example:"student"`
	Status   string `form:"status" example:"active"`
}
