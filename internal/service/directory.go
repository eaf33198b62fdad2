package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"library-system/internal/database"
	"library-system/internal/model"
	"library-system/internal/store"

	"github.com/jackc/pgx/v5"
)

// CreateUserInput carries the fields an administrator supplies when adding a
// user. Role and Status may arrive in the UI vocabulary.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
	Status   string
}

// UpdateUserInput mirrors CreateUserInput for updates. An empty NewPassword
// leaves the stored credential untouched.
type UpdateUserInput struct {
	Username    string
	Email       string
	NewPassword string
	Role        string
	Status      string
}

// SearchUsers filters the directory. Filters are optional and combine with
// AND; the role filter accepts UI tokens ("student") and is normalized before
// the query.
func SearchUsers(ctx context.Context, db database.DB, query, role, status string) ([]model.User, error) {
	f := store.UserFilter{Query: strings.TrimSpace(query)}
	if strings.TrimSpace(role) != "" {
		f.Role = NormalizeRole(role)
	}
	if strings.TrimSpace(status) != "" {
		f.Status = strings.ToLower(strings.TrimSpace(status))
	}
	return store.SearchUsers(ctx, db, f)
}

// CreateUser validates input, rejects duplicate emails and inserts the user
// with a hashed credential.
//
// The email check and the insert are two statements without a transaction, so
// two concurrent creates can both pass the check; the schema's UNIQUE
// constraint turns that race into a store error instead of a duplicate row.
func CreateUser(ctx context.Context, db database.DB, in CreateUserInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	if _, err := store.GetUserIDByEmail(ctx, db, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return store.CreateUser(ctx, db, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         NormalizeRole(in.Role),
		Status:       NormalizeStatus(in.Status),
	})
}

// UpdateUser validates input and rewrites the user row. The credential is
// replaced only when NewPassword is non-empty. A missing id is ErrNotFound.
func UpdateUser(ctx context.Context, db database.DB, id int, in UpdateUserInput) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" {
		return fmt.Errorf("%w: username and email are required", ErrValidation)
	}

	u := &model.User{
		ID:       id,
		Username: username,
		Email:    email,
		Role:     NormalizeRole(in.Role),
		Status:   NormalizeStatus(in.Status),
	}

	var err error
	if in.NewPassword != "" {
		u.PasswordHash, err = HashPassword(in.NewPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		err = store.UpdateUserWithPassword(ctx, db, u)
	} else {
		err = store.UpdateUser(ctx, db, u)
	}
	return mapNotFound(err)
}

// SetUserStatus enables or disables an account. Any target other than
// "disabled" coerces to "active".
func SetUserStatus(ctx context.Context, db database.DB, id int, target string) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	return mapNotFound(store.SetUserStatus(ctx, db, id, CoerceStatus(target)))
}

// DeleteUser removes the account row. Hard delete, no tombstone.
func DeleteUser(ctx context.Context, db database.DB, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	return mapNotFound(store.DeleteUser(ctx, db, id))
}

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
