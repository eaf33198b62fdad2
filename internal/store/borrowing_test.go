package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"library-system/internal/database"
	"library-system/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeBorrowingRows struct {
	records []model.Borrowing
	idx     int
	scanErr error
	rowsErr error
}

func (r *fakeBorrowingRows) Close()                                       {}
func (r *fakeBorrowingRows) Err() error                                   { return r.rowsErr }
func (r *fakeBorrowingRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeBorrowingRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeBorrowingRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeBorrowingRows) RawValues() [][]byte                          { return nil }
func (r *fakeBorrowingRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeBorrowingRows) Next() bool {
	r.idx++
	return r.idx <= len(r.records)
}

func (r *fakeBorrowingRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	b := r.records[r.idx-1]
	*dest[0].(*int) = b.ID
	*dest[1].(*int) = b.UserID
	*dest[2].(*string) = b.Title
	*dest[3].(*string) = b.Author
	*dest[4].(*time.Time) = b.BorrowDate
	*dest[5].(*time.Time) = b.DueDate
	*dest[6].(**time.Time) = b.ReturnDate
	*dest[7].(*string) = b.Status
	*dest[8].(**string) = b.StaffName
	return nil
}

// countRow answers a single COUNT(*) scan.
type countRow struct {
	n   int
	err error
}

func (r countRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int) = r.n
	return nil
}

func sampleBorrowings() []model.Borrowing {
	borrow := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	due := borrow.AddDate(0, 0, 14)
	returned := due.AddDate(0, 0, -1)
	staff := "carol"
	return []model.Borrowing{
		{ID: 2, UserID: 9, Title: "Dune", Author: "Herbert", BorrowDate: borrow.AddDate(0, 0, 7), DueDate: due.AddDate(0, 0, 7), Status: model.BorrowStatusBorrowed, StaffName: &staff},
		{ID: 1, UserID: 9, Title: "Emma", Author: "Austen", BorrowDate: borrow, DueDate: due, ReturnDate: &returned, Status: model.BorrowStatusReturned},
	}
}

func TestListUserBorrowings(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				require.Contains(t, sql, "JOIN books")
				require.Contains(t, sql, "ORDER BY b.borrow_date DESC")
				require.Equal(t, []any{9}, args)
				return &fakeBorrowingRows{records: sampleBorrowings()}, nil
			},
		}
		records, err := ListUserBorrowings(context.Background(), db, 9)
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, "Dune", records[0].Title)
		require.Nil(t, records[0].ReturnDate)
		require.NotNil(t, records[1].ReturnDate)
		require.Equal(t, "carol", *records[0].StaffName)
	})

	t.Run("query error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return nil, errors.New("down")
			},
		}
		_, err := ListUserBorrowings(context.Background(), db, 9)
		require.Error(t, err)
	})

	t.Run("scan error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return &fakeBorrowingRows{records: sampleBorrowings(), scanErr: errors.New("scan")}, nil
			},
		}
		_, err := ListUserBorrowings(context.Background(), db, 9)
		require.Error(t, err)
	})

	t.Run("rows error after iteration", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return &fakeBorrowingRows{rowsErr: errors.New("broken")}, nil
			},
		}
		_, err := ListUserBorrowings(context.Background(), db, 9)
		require.Error(t, err)
	})
}

func TestListOverdueBorrowings(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	db := &database.FakeDB{
		QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			require.Contains(t, sql, "b.status = $1 AND b.due_date < $2")
			require.Equal(t, []any{model.BorrowStatusBorrowed, now}, args)
			return &fakeBorrowingRows{records: sampleBorrowings()[:1]}, nil
		},
	}
	records, err := ListOverdueBorrowings(context.Background(), db, now)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestBorrowingCounts(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("total", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "COUNT(*)")
				require.Equal(t, []any{9}, args)
				return countRow{n: 12}
			},
		}
		n, err := CountUserBorrowings(context.Background(), db, 9)
		require.NoError(t, err)
		require.Equal(t, 12, n)
	})

	t.Run("by status", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "status = $2")
				require.Equal(t, []any{9, "returned"}, args)
				return countRow{n: 8}
			},
		}
		n, err := CountUserBorrowingsByStatus(context.Background(), db, 9, "returned")
		require.NoError(t, err)
		require.Equal(t, 8, n)
	})

	t.Run("overdue", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "due_date < $3")
				require.Equal(t, []any{9, model.BorrowStatusBorrowed, now}, args)
				return countRow{n: 2}
			},
		}
		n, err := CountUserOverdueBorrowings(context.Background(), db, 9, now)
		require.NoError(t, err)
		require.Equal(t, 2, n)
	})

	t.Run("scan error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return countRow{err: errors.New("down")}
			},
		}
		_, err := CountUserBorrowings(context.Background(), db, 9)
		require.Error(t, err)
	})
}
