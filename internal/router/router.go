package router

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"library-system/internal/cache"
	"library-system/internal/database"
	"library-system/internal/handler"
	"library-system/internal/handler/auth"
	"library-system/internal/handler/borrowings"
	"library-system/internal/handler/users"
	"library-system/internal/middleware"
)

// Setup registers all routes and their access middleware.
func Setup(e *echo.Echo, db database.DB, cch cache.Cache) {
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// health check, behind auth
	api.GET("/ping", handler.PingHandler(db, cch), middleware.RequireAuth)

	api.POST("/auth/login", auth.LoginHandler(db))

	// admin-only directory management
	apiUsers := api.Group("/users", middleware.RequireAdmin)
	apiUsers.GET("", users.ListUsersHandler(db))
	apiUsers.POST("", users.CreateUserHandler(db))
	apiUsers.PUT("/:user_id", users.UpdateUserHandler(db))
	apiUsers.PATCH("/:user_id/status", users.SetUserStatusHandler(db))
	apiUsers.DELETE("/:user_id", users.DeleteUserHandler(db))

	// staff and admins may inspect any user's borrowing record
	api.GET("/users/:user_id/borrowings", borrowings.UserHistoryHandler(db), middleware.RequireLibrarian)
	api.GET("/users/:user_id/borrowings/stats", borrowings.UserStatsHandler(db, cch), middleware.RequireLibrarian)

	// every authenticated user sees their own
	apiMe := api.Group("/me", middleware.RequireAuth)
	apiMe.GET("/borrowings", borrowings.MyHistoryHandler(db))
	apiMe.GET("/borrowings/stats", borrowings.MyStatsHandler(db, cch))
}
