package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/pkg/apperrors"
)

// VerificationTokenRepository handles database operations for email
// verification codes
type VerificationTokenRepository struct {
	db *pgxpool.Pool
}

// NewVerificationTokenRepository creates a new VerificationTokenRepository
func NewVerificationTokenRepository(db *pgxpool.Pool) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: db}
}

// UpsertToken stores a fresh verification code for a user, replacing any
// earlier one. A user has at most one live code.
func (r *VerificationTokenRepository) UpsertToken(ctx context.Context, userID int64, code string, expiresAt time.Time) error {
	query := squirrel.Insert("verification_tokens").
		Columns("user_id", "code", "used", "expires_at").
		Values(userID, code, false, expiresAt).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET code = EXCLUDED.code, used = FALSE, expires_at = EXCLUDED.expires_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error storing verification token: %w", err)
	}

	return nil
}

// GetTokenByUserID retrieves the verification code of a user
func (r *VerificationTokenRepository) GetTokenByUserID(ctx context.Context, userID int64) (*models.VerificationToken, error) {
	query := squirrel.Select("id", "user_id", "code", "used", "expires_at").
		From("verification_tokens").
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	token := &models.VerificationToken{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&token.ID, &token.UserID, &token.Code, &token.Used, &token.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVerificationTokenNotFound
		}
		return nil, fmt.Errorf("error getting verification token: %w", err)
	}

	return token, nil
}

// MarkUsed flags a verification code as consumed
func (r *VerificationTokenRepository) MarkUsed(ctx context.Context, tokenID int64) error {
	query := squirrel.Update("verification_tokens").
		Set("used", true).
		Where("id = ?", tokenID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error marking token used: %w", err)
	}

	return nil
}

// DeleteExpiredTokens deletes all expired codes
func (r *VerificationTokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	query := squirrel.Delete("verification_tokens").
		Where("expires_at < ?", time.Now()).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting expired tokens: %w", err)
	}

	return nil
}
