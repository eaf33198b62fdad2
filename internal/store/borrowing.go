package store

import (
	"context"
	"fmt"
	"time"

	"library-system/internal/database"
	"library-system/internal/model"

	"github.com/jackc/pgx/v5"
)

func scanBorrowings(rows pgx.Rows) ([]model.Borrowing, error) {
	defer rows.Close()
	var records []model.Borrowing
	for rows.Next() {
		b := model.Borrowing{}
		if err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.Title,
			&b.Author,
			&b.BorrowDate,
			&b.DueDate,
			&b.ReturnDate,
			&b.Status,
			&b.StaffName,
		); err != nil {
			return nil, err
		}
		records = append(records, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ListUserBorrowings returns a user's full borrowing history joined with the
// book catalog, most recent checkout first.
func ListUserBorrowings(ctx context.Context, db database.DB, userID int) ([]model.Borrowing, error) {
	rows, err := db.Query(ctx,
		`SELECT b.id, b.user_id, bk.title, bk.author, b.borrow_date, b.due_date, b.return_date, b.status, b.staff_name
		 FROM borrowings b
		 JOIN books bk ON b.book_id = bk.id
		 WHERE b.user_id = $1
		 ORDER BY b.borrow_date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUserBorrowings: %w", err)
	}
	records, err := scanBorrowings(rows)
	if err != nil {
		return nil, fmt.Errorf("ListUserBorrowings: %w", err)
	}
	return records, nil
}

// ListOverdueBorrowings returns every borrowing past its due date and not yet
// returned, across all users, for the alert scan.
func ListOverdueBorrowings(ctx context.Context, db database.DB, now time.Time) ([]model.Borrowing, error) {
	rows, err := db.Query(ctx,
		`SELECT b.id, b.user_id, bk.title, bk.author, b.borrow_date, b.due_date, b.return_date, b.status, b.staff_name
		 FROM borrowings b
		 JOIN books bk ON b.book_id = bk.id
		 WHERE b.status = $1 AND b.due_date < $2
		 ORDER BY b.due_date ASC`,
		model.BorrowStatusBorrowed,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("ListOverdueBorrowings: %w", err)
	}
	records, err := scanBorrowings(rows)
	if err != nil {
		return nil, fmt.Errorf("ListOverdueBorrowings: %w", err)
	}
	return records, nil
}

func CountUserBorrowings(ctx context.Context, db database.DB, userID int) (int, error) {
	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM borrowings WHERE user_id = $1`,
		userID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountUserBorrowings: %w", err)
	}
	return n, nil
}

func CountUserBorrowingsByStatus(ctx context.Context, db database.DB, userID int, status string) (int, error) {
	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM borrowings WHERE user_id = $1 AND status = $2`,
		userID,
		status,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountUserBorrowingsByStatus: %w", err)
	}
	return n, nil
}

func CountUserOverdueBorrowings(ctx context.Context, db database.DB, userID int, now time.Time) (int, error) {
	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM borrowings WHERE user_id = $1 AND status = $2 AND due_date < $3`,
		userID,
		model.BorrowStatusBorrowed,
		now,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountUserOverdueBorrowings: %w", err)
	}
	return n, nil
}
