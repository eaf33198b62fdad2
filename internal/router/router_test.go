package router

import (
	"net/http"
	"testing"

	"library-system/internal/cache"
	"library-system/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	Setup(e, &database.FakeDB{}, &cache.FakeCache{})

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /swagger/*",
		http.MethodGet + " /api/ping",
		http.MethodPost + " /api/auth/login",
		http.MethodGet + " /api/users",
		http.MethodPost + " /api/users",
		http.MethodPut + " /api/users/:user_id",
		http.MethodPatch + " /api/users/:user_id/status",
		http.MethodDelete + " /api/users/:user_id",
		http.MethodGet + " /api/users/:user_id/borrowings",
		http.MethodGet + " /api/users/:user_id/borrowings/stats",
		http.MethodGet + " /api/me/borrowings",
		http.MethodGet + " /api/me/borrowings/stats",
	}

	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
	require.Equal(t, len(expected), len(got))
}
