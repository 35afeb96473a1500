package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/pkg/apperrors"
)

type verificationFixture struct {
	service *VerificationService
	users   *fakeUserStore
	tokens  *fakeTokenStore
	mailer  *fakeMailer
}

func newVerificationFixture() *verificationFixture {
	f := &verificationFixture{
		users:  newFakeUserStore(),
		tokens: newFakeTokenStore(),
		mailer: &fakeMailer{},
	}
	f.service = NewVerificationService(f.users, f.tokens, f.mailer, zerolog.Nop())
	return f
}

func (f *verificationFixture) seedUser() *models.User {
	return f.users.add(&models.User{
		Name:  "Dupont",
		Email: "dupont@etu.test",
		Role:  models.RoleStudent,
	})
}

func TestSendNewCode(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and mails a fresh code", func(t *testing.T) {
		f := newVerificationFixture()
		user := f.seedUser()

		require.NoError(t, f.service.SendNewCode(ctx, user))

		token, err := f.tokens.GetTokenByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, token.Code, 5)
		assert.False(t, token.Used)
		assert.True(t, token.ExpiresAt.After(time.Now()))

		require.Len(t, f.mailer.verificationMails, 1)
		assert.Equal(t, user.Email, f.mailer.verificationMails[0].toEmail)
		assert.Equal(t, token.Code, f.mailer.verificationMails[0].code)
	})

	t.Run("replaces the previous code", func(t *testing.T) {
		f := newVerificationFixture()
		user := f.seedUser()
		require.NoError(t, f.tokens.UpsertToken(ctx, user.ID, "111111", time.Now().Add(time.Minute)))
		require.NoError(t, f.tokens.MarkUsed(ctx, 1))

		require.NoError(t, f.service.SendNewCode(ctx, user))

		token, err := f.tokens.GetTokenByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "111111", token.Code)
		assert.False(t, token.Used)
	})

	t.Run("surfaces mailer failures", func(t *testing.T) {
		f := newVerificationFixture()
		f.mailer.failSend = true
		user := f.seedUser()

		err := f.service.SendNewCode(ctx, user)
		assert.ErrorIs(t, err, errSendFailed)
	})
}

func TestResendCode(t *testing.T) {
	ctx := context.Background()

	t.Run("looks the user up by email and sends a code", func(t *testing.T) {
		f := newVerificationFixture()
		user := f.seedUser()

		require.NoError(t, f.service.ResendCode(ctx, user.Email))

		require.Len(t, f.mailer.verificationMails, 1)
		assert.Equal(t, user.Email, f.mailer.verificationMails[0].toEmail)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newVerificationFixture()

		err := f.service.ResendCode(ctx, "nobody@etu.test")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Empty(t, f.mailer.verificationMails)
	})
}

func TestVerifyCode(t *testing.T) {
	ctx := context.Background()

	t.Run("consumes the code and verifies the email", func(t *testing.T) {
		f := newVerificationFixture()
		user := f.seedUser()
		require.NoError(t, f.tokens.UpsertToken(ctx, user.ID, "123456", time.Now().Add(time.Minute)))

		verified, err := f.service.VerifyCode(ctx, user.Email, "123456")
		require.NoError(t, err)
		assert.True(t, verified.EmailVerified)

		token, err := f.tokens.GetTokenByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, token.Used)
		assert.True(t, f.users.users[user.ID].EmailVerified)
	})

	t.Run("unknown email fails", func(t *testing.T) {
		f := newVerificationFixture()

		_, err := f.service.VerifyCode(ctx, "nobody@etu.test", "123456")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("a consumed code cannot be reused", func(t *testing.T) {
		f := newVerificationFixture()
		user := f.seedUser()
		require.NoError(t, f.tokens.UpsertToken(ctx, user.ID, "123456", time.Now().Add(time.Minute)))
		_, err := f.service.VerifyCode(ctx, user.Email, "123456")
		require.NoError(t, err)

		_, err = f.service.VerifyCode(ctx, user.Email, "123456")
		assert.ErrorIs(t, err, apperrors.ErrVerificationTokenUsed)
	})

	t.Run("an expired code is replaced and re-sent", func(t *testing.T) {
		f := newVerificationFixture()
		user := f.seedUser()
		require.NoError(t, f.tokens.UpsertToken(ctx, user.ID, "123456", time.Now().Add(-time.Minute)))

		_, err := f.service.VerifyCode(ctx, user.Email, "123456")
		assert.ErrorIs(t, err, apperrors.ErrVerificationTokenExpired)

		token, getErr := f.tokens.GetTokenByUserID(ctx, user.ID)
		require.NoError(t, getErr)
		assert.NotEqual(t, "123456", token.Code)
		assert.True(t, token.ExpiresAt.After(time.Now()))
		require.Len(t, f.mailer.verificationMails, 1)
		assert.Equal(t, token.Code, f.mailer.verificationMails[0].code)
	})

	t.Run("still reports expiry when the re-send fails", func(t *testing.T) {
		f := newVerificationFixture()
		f.mailer.failSend = true
		user := f.seedUser()
		require.NoError(t, f.tokens.UpsertToken(ctx, user.ID, "123456", time.Now().Add(-time.Minute)))

		_, err := f.service.VerifyCode(ctx, user.Email, "123456")
		assert.ErrorIs(t, err, apperrors.ErrVerificationTokenExpired)
	})

	t.Run("a wrong code is rejected and stays usable", func(t *testing.T) {
		f := newVerificationFixture()
		user := f.seedUser()
		require.NoError(t, f.tokens.UpsertToken(ctx, user.ID, "123456", time.Now().Add(time.Minute)))

		_, err := f.service.VerifyCode(ctx, user.Email, "654321")
		assert.ErrorIs(t, err, apperrors.ErrVerificationCodeMismatch)

		_, err = f.service.VerifyCode(ctx, user.Email, "123456")
		assert.NoError(t, err)
	})
}
