package users

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"library-system/internal/api"
	"library-system/internal/database"
	"library-system/internal/logger"
	"library-system/internal/middleware"
	"library-system/internal/model"
	"library-system/internal/service"

	"github.com/labstack/echo/v4"
)

// Indirection points for tests.
var (
	searchUsers   = service.SearchUsers
	createUser    = service.CreateUser
	updateUser    = service.UpdateUser
	setUserStatus = service.SetUserStatus
	deleteUser    = service.DeleteUser
)

func toUserResponse(u model.User) api.UserResponse {
	return api.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		DisplayRole: service.DisplayRole(u.Role),
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
	}
}

func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrDuplicateEmail):
		return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "email already in use"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
	default:
		logger.Get().Error().Err(err).Str("path", c.Path()).Msg("user operation failed")
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
	}
}

func pathUserID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id")
	}
	return id, nil
}

// ListUsersHandler searches the directory.
// @Summary     List users
// @Description Filters by free-text query, role and status; all filters optional
// @Tags        users
// @Produce     json
// @Param       q      query string false "match against username or email"
// @Param       role   query string false "role filter, UI or storage vocabulary"
// @Param       status query string false "status filter"
// @Success     200 {array}  api.UserResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := searchUsers(c.Request().Context(), db,
			c.QueryParam("q"), c.QueryParam("role"), c.QueryParam("status"))
		if err != nil {
			return writeServiceError(c, err)
		}
		out := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			out = append(out, toUserResponse(u))
		}
		return c.JSON(http.StatusOK, out)
	}
}

// CreateUserHandler registers a new user.
// @Summary     Create user
// @Tags        users
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       username formData string true  "username"
// @Param       email    formData string true  "email"
// @Param       password formData string true  "password"
// @Param       role     formData string false "role, UI or storage vocabulary"
// @Param       status   formData string false "status, defaults to active"
// @Success     201 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: fmt.Sprintf("invalid form data: %v", err)})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		user, err := createUser(c.Request().Context(), db, service.CreateUserInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
			Status:   req.Status,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusCreated, toUserResponse(*user))
	}
}

// UpdateUserHandler rewrites a user's profile. Password changes only when
// new_password is supplied.
// @Summary     Update user
// @Tags        users
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       user_id      path     int    true  "user id"
// @Param       username     formData string true  "username"
// @Param       email        formData string true  "email"
// @Param       new_password formData string false "replacement password"
// @Param       role         formData string false "role"
// @Param       status       formData string false "status"
// @Success     204
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users/{user_id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathUserID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: fmt.Sprintf("invalid form data: %v", err)})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		err = updateUser(c.Request().Context(), db, id, service.UpdateUserInput{
			Username:    req.Username,
			Email:       req.Email,
			NewPassword: req.NewPassword,
			Role:        req.Role,
			Status:      req.Status,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// SetUserStatusHandler enables or disables an account. Callers cannot change
// their own status.
// @Summary     Set user status
// @Tags        users
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       user_id path     int    true "user id"
// @Param       status  formData string true "active or disabled"
// @Success     204
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users/{user_id}/status [patch]
func SetUserStatusHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathUserID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		claims := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if claims.UserID == id {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "cannot change your own status"})
		}
		var req api.SetUserStatusRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: fmt.Sprintf("invalid form data: %v", err)})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if err := setUserStatus(c.Request().Context(), db, id, req.Status); err != nil {
			return writeServiceError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// DeleteUserHandler removes an account. Callers cannot delete themselves.
// @Summary     Delete user
// @Tags        users
// @Produce     json
// @Param       user_id path int true "user id"
// @Success     204
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users/{user_id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathUserID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		claims := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if claims.UserID == id {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "cannot delete your own account"})
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			return writeServiceError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
