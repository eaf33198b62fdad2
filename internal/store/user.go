package store

import (
	"context"
	"fmt"
	"strings"

	"library-system/internal/database"
	"library-system/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserFilter holds the optional search predicates. Values are expected in the
// storage vocabulary already; the service layer normalizes them.
type UserFilter struct {
	Query  string // substring match on username OR email, case-insensitive
	Role   string
	Status string
}

const userColumns = `id, username, email, password_hash, role, status, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Status,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

// SearchUsers returns users matching every supplied predicate, ascending by
// username. Empty filter fields are skipped.
func SearchUsers(ctx context.Context, db database.DB, f UserFilter) ([]model.User, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT ` + userColumns + ` FROM users`)
	var conds []string
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(username ILIKE $%d OR email ILIKE $%d)", n, n))
	}
	if f.Role != "" {
		args = append(args, f.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY username ASC")

	rows, err := db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("SearchUsers: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u := model.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("SearchUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SearchUsers: %w", err)
	}
	return users, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByUsername(ctx context.Context, db database.DB, username string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByUsername: %w", err)
	}
	return u, nil
}

// GetUserIDByEmail looks up a user id by exact email match. Returns
// pgx.ErrNoRows (wrapped) when no user has the email.
func GetUserIDByEmail(ctx context.Context, db database.DB, email string) (int, error) {
	var id int
	if err := db.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1 LIMIT 1`,
		email,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("GetUserIDByEmail: %w", err)
	}
	return id, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, role, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.Status,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// UpdateUser rewrites username, email, role and status, leaving the stored
// credential untouched. A missing id surfaces as pgx.ErrNoRows.
func UpdateUser(ctx context.Context, db database.DB, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET username = $1, email = $2, role = $3, status = $4
		 WHERE id = $5`,
		u.Username,
		u.Email,
		u.Role,
		u.Status,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUser: %w", pgx.ErrNoRows)
	}
	return nil
}

// UpdateUserWithPassword is UpdateUser plus a credential replacement.
func UpdateUserWithPassword(ctx context.Context, db database.DB, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET username = $1, email = $2, role = $3, status = $4, password_hash = $5
		 WHERE id = $6`,
		u.Username,
		u.Email,
		u.Role,
		u.Status,
		u.PasswordHash,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserWithPassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserWithPassword: %w", pgx.ErrNoRows)
	}
	return nil
}

func SetUserStatus(ctx context.Context, db database.DB, userID int, status string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET status = $1 WHERE id = $2`,
		status,
		userID,
	)
	if err != nil {
		return fmt.Errorf("SetUserStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("SetUserStatus: %w", pgx.ErrNoRows)
	}
	return nil
}

func DeleteUser(ctx context.Context, db database.DB, userID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", pgx.ErrNoRows)
	}
	return nil
}
