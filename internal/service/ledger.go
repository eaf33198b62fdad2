package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"library-system/internal/cache"
	"library-system/internal/database"
	"library-system/internal/model"
	"library-system/internal/store"
)

// FinePerDayCents is the flat overdue rate: 50 cents per day.
const FinePerDayCents = 50

// statsCacheTTL bounds how stale the dashboard counters may be.
const statsCacheTTL = time.Minute

// Overridable for tests.
var (
	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
)

// IsOverdue reports whether a borrowing is past due and not yet returned.
// Overdue is always derived; it is never a stored status.
func IsOverdue(b model.Borrowing, now time.Time) bool {
	return b.Status == model.BorrowStatusBorrowed && b.DueDate.Before(now)
}

// DaysOverdue counts the days a borrowing is late, rounding any partial day
// up, so the first overdue day is charged immediately. Zero when not overdue.
func DaysOverdue(b model.Borrowing, now time.Time) int {
	if !IsOverdue(b, now) {
		return 0
	}
	elapsed := now.Sub(b.DueDate)
	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// FineCents is the accrued fine for an overdue borrowing, in cents. The same
// day count drives both the fine and any "+Nd" badge, so the two always agree.
func FineCents(b model.Borrowing, now time.Time) int {
	return DaysOverdue(b, now) * FinePerDayCents
}

func statsCacheKey(userID int) string {
	return fmt.Sprintf("borrow:stats:%d", userID)
}

// UserBorrowStats aggregates a user's borrowing counters, serving from the
// cache when possible. The four counts are independent queries, so they are
// not snapshot-consistent under concurrent writes; fine for a dashboard.
// Cache failures fall through to the store silently.
func UserBorrowStats(ctx context.Context, db database.DB, c cache.Cache, userID int, now time.Time) (*model.BorrowStats, error) {
	key := statsCacheKey(userID)
	if c != nil {
		if raw, err := c.Get(ctx, key).Result(); err == nil {
			s := &model.BorrowStats{}
			if jsonUnmarshal([]byte(raw), s) == nil {
				return s, nil
			}
		}
	}

	total, err := store.CountUserBorrowings(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	borrowed, err := store.CountUserBorrowingsByStatus(ctx, db, userID, model.BorrowStatusBorrowed)
	if err != nil {
		return nil, err
	}
	overdue, err := store.CountUserOverdueBorrowings(ctx, db, userID, now)
	if err != nil {
		return nil, err
	}
	returned, err := store.CountUserBorrowingsByStatus(ctx, db, userID, model.BorrowStatusReturned)
	if err != nil {
		return nil, err
	}

	s := &model.BorrowStats{
		TotalBorrowed:     total,
		CurrentlyBorrowed: borrowed,
		Overdue:           overdue,
		Returned:          returned,
	}
	if c != nil {
		if buf, err := jsonMarshal(s); err == nil {
			c.Set(ctx, key, buf, statsCacheTTL)
		}
	}
	return s, nil
}
