package service

import (
	"context"
	"time"

	"library-system/internal/database"
	"library-system/internal/store"

	"github.com/rs/zerolog"
)

// ScanOverdue lists every borrowing currently past due and logs one alert per
// record with the accrued fine. It is the background counterpart of the
// overdue-alerts dashboard and runs on the worker pool.
func ScanOverdue(ctx context.Context, db database.DB, log zerolog.Logger, now time.Time) (int, error) {
	records, err := store.ListOverdueBorrowings(ctx, db, now)
	if err != nil {
		return 0, err
	}
	for _, b := range records {
		log.Warn().
			Int("borrowing_id", b.ID).
			Int("user_id", b.UserID).
			Str("title", b.Title).
			Time("due_date", b.DueDate).
			Int("days_overdue", DaysOverdue(b, now)).
			Int("fine_cents", FineCents(b, now)).
			Msg("borrowing overdue")
	}
	return len(records), nil
}
