package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/repositories"
	"github.com/internlink/backend/internal/pkg/apperrors"
	"github.com/internlink/backend/internal/pkg/email"
)

// Verification codes stay valid for ten minutes
const verificationCodeTTL = 10 * time.Minute

type verificationUserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	MarkEmailVerified(ctx context.Context, userID int64) error
}

type verificationTokenStore interface {
	UpsertToken(ctx context.Context, userID int64, code string, expiresAt time.Time) error
	GetTokenByUserID(ctx context.Context, userID int64) (*models.VerificationToken, error)
	MarkUsed(ctx context.Context, tokenID int64) error
}

var (
	_ verificationUserStore  = (*repositories.UserRepository)(nil)
	_ verificationTokenStore = (*repositories.VerificationTokenRepository)(nil)
)

// VerificationService manages email verification codes
type VerificationService struct {
	users  verificationUserStore
	tokens verificationTokenStore
	mailer email.Mailer
	logger zerolog.Logger
}

// NewVerificationService creates a new VerificationService
func NewVerificationService(users verificationUserStore, tokens verificationTokenStore, mailer email.Mailer, logger zerolog.Logger) *VerificationService {
	return &VerificationService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		logger: logger,
	}
}

// SendNewCode generates a fresh verification code for the user, stores it and
// mails it out. Any earlier code of the user is replaced.
func (s *VerificationService) SendNewCode(ctx context.Context, user *models.User) error {
	code := email.GenerateCode()

	if err := s.tokens.UpsertToken(ctx, user.ID, code, time.Now().Add(verificationCodeTTL)); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationCode(user.Email, user.Name, code); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send verification code")
		return err
	}

	return nil
}

// ResendCode sends a fresh verification code to the account behind the email
func (s *VerificationService) ResendCode(ctx context.Context, emailAddr string) error {
	user, err := s.users.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	return s.SendNewCode(ctx, user)
}

// VerifyCode checks the code a user typed in against the stored one. On a
// match the code is consumed and the account's email flagged verified. An
// expired code is replaced and re-sent before the call fails.
func (s *VerificationService) VerifyCode(ctx context.Context, emailAddr, code string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GetTokenByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if token.Used {
		return nil, apperrors.ErrVerificationTokenUsed
	}

	if token.ExpiresAt.Before(time.Now()) {
		if err := s.SendNewCode(ctx, user); err != nil {
			s.logger.Error().Err(err).Str("email", emailAddr).Msg("Failed to re-send verification code")
		}
		return nil, apperrors.ErrVerificationTokenExpired
	}

	if token.Code != code {
		return nil, apperrors.ErrVerificationCodeMismatch
	}

	if err := s.tokens.MarkUsed(ctx, token.ID); err != nil {
		return nil, err
	}

	if err := s.users.MarkEmailVerified(ctx, user.ID); err != nil {
		return nil, err
	}

	user.EmailVerified = true
	return user, nil
}
