package api

// swagger:model api.SetUserStatusRequest
type SetUserStatusRequest struct {
	Status string `form:"status" validate:"required" example:"disabled"`
}
