package api

// swagger:model api.BorrowStatsResponse
type BorrowStatsResponse struct {
	TotalBorrowed     int `json:"total_borrowed" example:"12"`
	CurrentlyBorrowed int `json:"currently_borrowed" example:"3"`
	Overdue           int `json:"overdue" example:"1"`
	Returned          int `json:"returned" example:"9"`
}
