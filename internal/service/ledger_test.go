package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"library-system/internal/cache"
	"library-system/internal/database"
	"library-system/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	require.True(t, IsOverdue(model.Borrowing{Status: model.BorrowStatusBorrowed, DueDate: yesterday}, now))
	require.False(t, IsOverdue(model.Borrowing{Status: model.BorrowStatusBorrowed, DueDate: tomorrow}, now))
	// returned records are never overdue, whatever the due date
	require.False(t, IsOverdue(model.Borrowing{Status: model.BorrowStatusReturned, DueDate: yesterday}, now))
}

// Fine policy: partial days round up, so the first overdue day is charged
// immediately and the "+Nd" badge always matches the billed amount.
func TestFineForBorrowing(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	overdue := func(age time.Duration) model.Borrowing {
		return model.Borrowing{Status: model.BorrowStatusBorrowed, DueDate: now.Add(-age)}
	}

	require.Equal(t, 1, DaysOverdue(overdue(6*time.Hour), now))
	require.Equal(t, FinePerDayCents, FineCents(overdue(6*time.Hour), now))

	require.Equal(t, 1, DaysOverdue(overdue(24*time.Hour), now))
	require.Equal(t, 2, DaysOverdue(overdue(25*time.Hour), now))
	require.Equal(t, 3, DaysOverdue(overdue(72*time.Hour), now))
	require.Equal(t, 3*FinePerDayCents, FineCents(overdue(72*time.Hour), now))

	// not yet due: no fine, zero days
	future := model.Borrowing{Status: model.BorrowStatusBorrowed, DueDate: now.Add(time.Hour)}
	require.Equal(t, 0, DaysOverdue(future, now))
	require.Equal(t, 0, FineCents(future, now))

	returned := model.Borrowing{Status: model.BorrowStatusReturned, DueDate: now.Add(-48 * time.Hour)}
	require.Equal(t, 0, FineCents(returned, now))
}

// statsDB answers the four independent count queries by argument shape:
// total has one arg, the status counts carry the status as second arg, and the
// overdue count adds the cutoff time as third.
func statsDB(t *testing.T, total, borrowed, overdue, returned int) *database.FakeDB {
	t.Helper()
	return &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			switch len(args) {
			case 1:
				return fakeRow{vals: []any{total}}
			case 2:
				if args[1] == model.BorrowStatusBorrowed {
					return fakeRow{vals: []any{borrowed}}
				}
				return fakeRow{vals: []any{returned}}
			case 3:
				return fakeRow{vals: []any{overdue}}
			default:
				t.Fatalf("unexpected count query: %s", sql)
				return nil
			}
		},
	}
}

func TestUserBorrowStatsFromStore(t *testing.T) {
	now := time.Now()
	var storedKey string
	var storedVal any
	c := &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(_ context.Context, key string, val any, ttl time.Duration) *redis.StatusCmd {
			storedKey = key
			storedVal = val
			require.Equal(t, statsCacheTTL, ttl)
			return redis.NewStatusResult("OK", nil)
		},
	}

	s, err := UserBorrowStats(context.Background(), statsDB(t, 10, 3, 2, 7), c, 42, now)
	require.NoError(t, err)
	require.Equal(t, 10, s.TotalBorrowed)
	require.Equal(t, 3, s.CurrentlyBorrowed)
	require.Equal(t, 2, s.Overdue)
	require.Equal(t, 7, s.Returned)

	// dashboard consistency: splits sum to the total, overdue within borrowed
	require.Equal(t, s.TotalBorrowed, s.CurrentlyBorrowed+s.Returned)
	require.LessOrEqual(t, s.Overdue, s.CurrentlyBorrowed)

	require.Equal(t, "borrow:stats:42", storedKey)
	var cached model.BorrowStats
	require.NoError(t, json.Unmarshal(storedVal.([]byte), &cached))
	require.Equal(t, *s, cached)
}

func TestUserBorrowStatsCacheHit(t *testing.T) {
	payload, err := json.Marshal(model.BorrowStats{TotalBorrowed: 5, CurrentlyBorrowed: 1, Overdue: 0, Returned: 4})
	require.NoError(t, err)

	c := &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			require.Equal(t, "borrow:stats:7", key)
			return redis.NewStringResult(string(payload), nil)
		},
	}

	// FakeDB without funcs panics if the cache hit still reaches the store.
	s, err := UserBorrowStats(context.Background(), &database.FakeDB{}, c, 7, time.Now())
	require.NoError(t, err)
	require.Equal(t, 5, s.TotalBorrowed)
	require.Equal(t, 4, s.Returned)
}

func TestUserBorrowStatsCacheMissAndCorrupt(t *testing.T) {
	c := &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			return redis.NewStringResult("{not json", nil)
		},
		SetFn: func(_ context.Context, _ string, _ any, _ time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("OK", nil)
		},
	}
	s, err := UserBorrowStats(context.Background(), statsDB(t, 2, 1, 0, 1), c, 9, time.Now())
	require.NoError(t, err)
	require.Equal(t, 2, s.TotalBorrowed)
}

func TestUserBorrowStatsNilCache(t *testing.T) {
	s, err := UserBorrowStats(context.Background(), statsDB(t, 1, 1, 1, 0), nil, 9, time.Now())
	require.NoError(t, err)
	require.Equal(t, 1, s.Overdue)
}

func TestUserBorrowStatsStoreError(t *testing.T) {
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return fakeRow{err: pgx.ErrNoRows}
		},
	}
	_, err := UserBorrowStats(context.Background(), db, nil, 9, time.Now())
	require.Error(t, err)
}
