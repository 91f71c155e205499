package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tc2000/fantasy/models"
)

// ErrNotFound is wrapped into every lookup that matches no row, so callers
// can distinguish a missing resource from a store failure with errors.Is
var ErrNotFound = errors.New("not found")

// UserRepository interface defines account database operations
type UserRepository interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id int, when time.Time) error
}

// userRepository implements UserRepository interface
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, role, api_key_enc, created_at, last_login
		FROM users
		WHERE id = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves a user by their unique username. This is the
// identity lookup used at login.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, role, api_key_enc, created_at, last_login
		FROM users
		WHERE username = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

// Create creates a new user account
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, role, api_key_enc, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	result, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.APIKeyEnc,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	user.ID = int(id)
	return nil
}

// UpdateLastLogin records a successful login time
func (r *userRepository) UpdateLastLogin(ctx context.Context, id int, when time.Time) error {
	query := `UPDATE users SET last_login = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, when, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with ID %d not found", id)
	}

	return nil
}

// scanUser scans a single user row, converting NULL columns
func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var email sql.NullString
	var apiKey sql.NullString
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Username,
		&email,
		&user.PasswordHash,
		&user.Role,
		&apiKey,
		&user.CreatedAt,
		&lastLogin,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if email.Valid {
		user.Email = email.String
	}
	if apiKey.Valid {
		user.APIKeyEnc = apiKey.String
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	return &user, nil
}
