package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/booknest/backend/internal/model"
)

const userColumns = `id, username, email, password_hash, role, is_verified, is_active,
	otp_code, otp_expires_at, last_login, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsVerified,
		&user.IsActive,
		&user.OTPCode,
		&user.OTPExpiresAt,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	query := `
		INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, uuid.New(), username, email, passwordHash))
}

func (db *Postgres) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, email))
}

// FindByEmailOrUsername backs the combined duplicate check on registration.
func (db *Postgres) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR username = $2 LIMIT 1`
	return scanUser(db.Pool.QueryRow(ctx, query, email, username))
}

func (db *Postgres) ListUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (db *Postgres) CountUsers(ctx context.Context) (int64, error) {
	var total int64
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total)
	return total, err
}

// UserUpdate lists the mutable user fields; nil means "leave unchanged".
type UserUpdate struct {
	Username *string
	Email    *string
	Role     *string
	IsActive *bool
}

func (db *Postgres) UpdateUser(ctx context.Context, id uuid.UUID, update UserUpdate) (*model.User, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Username != nil {
		appendSet("username", *update.Username)
	}
	if update.Email != nil {
		appendSet("email", *update.Email)
	}
	if update.Role != nil {
		appendSet("role", *update.Role)
	}
	if update.IsActive != nil {
		appendSet("is_active", *update.IsActive)
	}

	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, args...))
}

func (db *Postgres) DeleteUser(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SetOTP stores a fresh challenge, overwriting any prior one.
func (db *Postgres) SetOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET otp_code = $2, otp_expires_at = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, id, code, expiresAt)
	return err
}

// ClearOTPIfMatches atomically spends a challenge. The update succeeds only
// while the stored code still matches and has not expired, so of two
// concurrent verifications exactly one observes a cleared row.
func (db *Postgres) ClearOTPIfMatches(ctx context.Context, id uuid.UUID, code string) (bool, error) {
	query := `
		UPDATE users
		SET otp_code = NULL, otp_expires_at = NULL, last_login = NOW(), updated_at = NOW()
		WHERE id = $1 AND otp_code = $2 AND otp_expires_at > NOW()
	`
	tag, err := db.Pool.Exec(ctx, query, id, code)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
