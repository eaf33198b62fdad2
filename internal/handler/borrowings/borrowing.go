package borrowings

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"library-system/internal/api"
	"library-system/internal/cache"
	"library-system/internal/database"
	"library-system/internal/logger"
	"library-system/internal/middleware"
	"library-system/internal/model"
	"library-system/internal/service"
	"library-system/internal/store"

	"github.com/labstack/echo/v4"
)

// Indirection points for tests.
var (
	listUserBorrowings = store.ListUserBorrowings
	userBorrowStats    = service.UserBorrowStats
	timeNow            = time.Now
)

func toBorrowingResponse(b model.Borrowing, now time.Time) api.BorrowingResponse {
	resp := api.BorrowingResponse{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		BorrowDate: b.BorrowDate,
		DueDate:    b.DueDate,
		ReturnDate: b.ReturnDate,
		Status:     b.Status,
		StaffName:  b.StaffName,
	}
	if service.IsOverdue(b, now) {
		resp.Overdue = true
		resp.DaysOverdue = service.DaysOverdue(b, now)
		resp.FineCents = service.FineCents(b, now)
	}
	return resp
}

func pathUserID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id")
	}
	return id, nil
}

func writeHistory(c echo.Context, db database.DB, userID int) error {
	records, err := listUserBorrowings(c.Request().Context(), db, userID)
	if err != nil {
		logger.Get().Error().Err(err).Int("user_id", userID).Msg("list borrowings failed")
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
	}
	now := timeNow().UTC()
	out := make([]api.BorrowingResponse, 0, len(records))
	for _, b := range records {
		out = append(out, toBorrowingResponse(b, now))
	}
	return c.JSON(http.StatusOK, out)
}

func writeStats(c echo.Context, db database.DB, cch cache.Cache, userID int) error {
	stats, err := userBorrowStats(c.Request().Context(), db, cch, userID, timeNow().UTC())
	if err != nil {
		logger.Get().Error().Err(err).Int("user_id", userID).Msg("borrow stats failed")
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
	}
	return c.JSON(http.StatusOK, api.BorrowStatsResponse{
		TotalBorrowed:     stats.TotalBorrowed,
		CurrentlyBorrowed: stats.CurrentlyBorrowed,
		Overdue:           stats.Overdue,
		Returned:          stats.Returned,
	})
}

// UserHistoryHandler returns a user's borrowing history, newest first.
// Unknown users yield an empty list.
// @Summary     User borrowing history
// @Tags        borrowings
// @Produce     json
// @Param       user_id path int true "user id"
// @Success     200 {array}  api.BorrowingResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users/{user_id}/borrowings [get]
func UserHistoryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathUserID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		return writeHistory(c, db, id)
	}
}

// UserStatsHandler returns a user's borrowing counters.
// @Summary     User borrowing stats
// @Tags        borrowings
// @Produce     json
// @Param       user_id path int true "user id"
// @Success     200 {object} api.BorrowStatsResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users/{user_id}/borrowings/stats [get]
func UserStatsHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathUserID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		return writeStats(c, db, cch, id)
	}
}

// MyHistoryHandler returns the caller's own borrowing history.
// @Summary     My borrowing history
// @Tags        borrowings
// @Produce     json
// @Success     200 {array}  api.BorrowingResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /me/borrowings [get]
func MyHistoryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		return writeHistory(c, db, claims.UserID)
	}
}

// MyStatsHandler returns the caller's own borrowing counters.
// @Summary     My borrowing stats
// @Tags        borrowings
// @Produce     json
// @Success     200 {object} api.BorrowStatsResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /me/borrowings/stats [get]
func MyStatsHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		return writeStats(c, db, cch, claims.UserID)
	}
}
