package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/pkg/apperrors"
)

// UserRepository handles common account database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user account
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	exists, err := r.EmailExists(ctx, user.Email)
	if err != nil {
		return 0, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO users (name, first_name, email, password, role, email_verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		user.Name, user.FirstName, user.Email, user.Password, user.Role, user.EmailVerified).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, first_name, email, password, role, email_verified, created_at
		FROM users
		WHERE email = $1`,
		email).Scan(
		&user.ID, &user.Name, &user.FirstName, &user.Email, &user.Password,
		&user.Role, &user.EmailVerified, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, first_name, email, password, role, email_verified, created_at
		FROM users
		WHERE id = $1`,
		id).Scan(
		&user.ID, &user.Name, &user.FirstName, &user.Email, &user.Password,
		&user.Role, &user.EmailVerified, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by id: %w", err)
	}

	return user, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// UpdatePassword replaces the stored password hash of a user
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET password = $1 WHERE id = $2`,
		passwordHash, userID)

	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	return nil
}

// UpdateEmail replaces the email address of a user
func (r *UserRepository) UpdateEmail(ctx context.Context, userID int64, email string) error {
	exists, err := r.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}

	_, err = r.db.Exec(ctx, `
		UPDATE users SET email = $1 WHERE id = $2`,
		email, userID)

	if err != nil {
		return fmt.Errorf("error updating email: %w", err)
	}

	return nil
}

// MarkEmailVerified flags a user's email address as verified
func (r *UserRepository) MarkEmailVerified(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET email_verified = TRUE WHERE id = $1`,
		userID)

	if err != nil {
		return fmt.Errorf("error marking email verified: %w", err)
	}

	return nil
}

// DeleteUser removes a user and everything cascading from it
func (r *UserRepository) DeleteUser(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM users WHERE id = $1`,
		userID)

	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// DeleteUnverifiedCreatedBefore removes accounts that never verified their
// email and were created before the cutoff. Returns the number of rows removed.
func (r *UserRepository) DeleteUnverifiedCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM users
		WHERE email_verified = FALSE AND created_at < $1`,
		cutoff)

	if err != nil {
		return 0, fmt.Errorf("error deleting unverified users: %w", err)
	}

	return tag.RowsAffected(), nil
}
