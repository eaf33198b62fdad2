package api

import "time"

// UserResponse carries the role in both vocabularies: role is the stored
// token, display_role what the dashboard shows.
// swagger:model api.UserResponse
type UserResponse struct {
	ID          int       `json:"id" example:"1"`
	Username    string    `json:"username" example:"ana"`
	Email       string    `json:"email" example:"ana@example.com"`
	Role        string    `json:"role" example:"user"`
	DisplayRole string    `json:"display_role" example:"Student"`
	Status      string    `json:"status" example:"active"`
	CreatedAt   time.Time `json:"created_at" example:"2026-05-01T15:04:05Z"`
}
