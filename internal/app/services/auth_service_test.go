package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/pkg/apperrors"
	"github.com/internlink/backend/internal/pkg/auth"
)

type fakeCodeSender struct {
	sentTo []int64
	err    error
}

func (f *fakeCodeSender) SendNewCode(_ context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, user.ID)
	return nil
}

type authFixture struct {
	service  *AuthService
	users    *fakeUserStore
	students *fakeStudentStore
	teachers *fakeTeacherStore
	codes    *fakeCodeSender
	jwt      *auth.JWTService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newFakeUserStore(),
		students: newFakeStudentStore(),
		teachers: newFakeTeacherStore(),
		codes:    &fakeCodeSender{},
		jwt: auth.NewJWTService(auth.JWTConfig{
			SecretKey:   "test-secret",
			TokenExp:    time.Hour,
			TokenIssuer: "internlink.test",
		}),
	}
	f.service = NewAuthService(f.users, f.students, f.teachers, f.codes, f.jwt, zerolog.Nop())
	return f
}

func (f *authFixture) seedVerifiedUser(t *testing.T, role models.Role, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return f.users.add(&models.User{
		Name:          "Dupont",
		Email:         "dupont@etu.test",
		Password:      hash,
		Role:          role,
		EmailVerified: true,
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("student gets a token with the department claim", func(t *testing.T) {
		f := newAuthFixture()
		user := f.seedVerifiedUser(t, models.RoleStudent, "secret123")
		f.students.students[user.ID] = &models.Student{UserID: user.ID, Department: "Computer Science"}

		resp, err := f.service.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, int64(3600), resp.ExpiresIn)

		claims, err := f.jwt.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "STUDENT", claims.Role)
		assert.Equal(t, "Computer Science", claims.Department)
	})

	t.Run("enterprise token carries no department", func(t *testing.T) {
		f := newAuthFixture()
		user := f.seedVerifiedUser(t, models.RoleEnterprise, "secret123")

		resp, err := f.service.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "secret123"})
		require.NoError(t, err)

		claims, err := f.jwt.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Empty(t, claims.Department)
	})

	t.Run("unknown email reads as bad credentials", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.Login(ctx, dto.LoginRequest{Email: "nobody@etu.test", Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("wrong password reads as bad credentials", func(t *testing.T) {
		f := newAuthFixture()
		user := f.seedVerifiedUser(t, models.RoleEnterprise, "secret123")

		_, err := f.service.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unverified email is refused after the password check", func(t *testing.T) {
		f := newAuthFixture()
		user := f.seedVerifiedUser(t, models.RoleEnterprise, "secret123")
		user.EmailVerified = false

		_, err := f.service.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrEmailNotVerified)
	})
}

func TestRequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("sends a code to the account holder", func(t *testing.T) {
		f := newAuthFixture()
		user := f.seedVerifiedUser(t, models.RoleStudent, "secret123")

		got, err := f.service.RequestPasswordReset(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, []int64{user.ID}, f.codes.sentTo)
	})

	t.Run("unknown email fails", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.RequestPasswordReset(ctx, "nobody@etu.test")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user := f.seedVerifiedUser(t, models.RoleStudent, "secret123")

	require.NoError(t, f.service.ResetPassword(ctx, user.Email, "newsecret"))
	assert.True(t, auth.CheckPassword(user.Password, "newsecret"))
	assert.False(t, auth.CheckPassword(user.Password, "secret123"))
}
