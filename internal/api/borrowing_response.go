package api

import "time"

// BorrowingResponse is one history record with its derived overdue fields.
// FineCents stays zero unless the record is overdue right now.
// swagger:model api.BorrowingResponse
type BorrowingResponse struct {
	ID          int        `json:"id" example:"1"`
	Title       string     `json:"title" example:"Dune"`
	Author      string     `json:"author" example:"Frank Herbert"`
	BorrowDate  time.Time  `json:"borrow_date"`
	DueDate     time.Time  `json:"due_date"`
	ReturnDate  *time.Time `json:"return_date,omitempty"`
	Status      string     `json:"status" example:"borrowed"`
	StaffName   *string    `json:"staff_name,omitempty" example:"carol"`
	Overdue     bool       `json:"overdue" example:"false"`
	DaysOverdue int        `json:"days_overdue" example:"0"`
	FineCents   int        `json:"fine_cents" example:"0"`
}
