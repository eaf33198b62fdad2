package model

import "time"

const (
	BorrowStatusBorrowed = "borrowed"
	BorrowStatusReturned = "returned"
)

// Borrowing is one checkout-and-return lifecycle record. Title and Author come
// from the books join; this service never writes borrowings.
type Borrowing struct {
	ID         int        `db:"id" json:"id"`
	UserID     int        `db:"user_id" json:"user_id"`
	Title      string     `db:"title" json:"title"`
	Author     string     `db:"author" json:"author"`
	BorrowDate time.Time  `db:"borrow_date" json:"borrow_date"`
	DueDate    time.Time  `db:"due_date" json:"due_date"`
	ReturnDate *time.Time `db:"return_date" json:"return_date,omitempty"`
	Status     string     `db:"status" json:"status"`
	StaffName  *string    `db:"staff_name" json:"staff_name,omitempty"`
}

// BorrowStats aggregates a user's borrowing counts. The four counts come from
// independent queries, so they are dashboard-grade, not billing-grade.
type BorrowStats struct {
	TotalBorrowed     int `json:"total_borrowed"`
	CurrentlyBorrowed int `json:"currently_borrowed"`
	Overdue           int `json:"overdue"`
	Returned          int `json:"returned"`
}
