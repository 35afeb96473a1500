package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/pkg/apperrors"
	"github.com/internlink/backend/internal/pkg/auth"
)

type fakeAccountCreator struct {
	nextID int64
	user   *models.User
	emails map[string]bool

	student    *models.Student
	teacher    *models.Teacher
	enterprise *models.Enterprise
	logo       *models.Logo

	err error
}

func (f *fakeAccountCreator) claimEmail(email string) error {
	if f.emails == nil {
		f.emails = make(map[string]bool)
	}
	if f.emails[email] {
		return apperrors.ErrEmailAlreadyExists
	}
	f.emails[email] = true
	return nil
}

func (f *fakeAccountCreator) CreateStudent(_ context.Context, user *models.User, student *models.Student) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if err := f.claimEmail(user.Email); err != nil {
		return 0, err
	}
	f.nextID++
	f.user, f.student = user, student
	return f.nextID, nil
}

func (f *fakeAccountCreator) CreateTeacher(_ context.Context, user *models.User, teacher *models.Teacher) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if err := f.claimEmail(user.Email); err != nil {
		return 0, err
	}
	f.nextID++
	f.user, f.teacher = user, teacher
	return f.nextID, nil
}

func (f *fakeAccountCreator) CreateEnterprise(_ context.Context, user *models.User, enterprise *models.Enterprise, logo *models.Logo) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if err := f.claimEmail(user.Email); err != nil {
		return 0, err
	}
	f.nextID++
	f.user, f.enterprise, f.logo = user, enterprise, logo
	return f.nextID, nil
}

func newRegistrationFixture() (*RegistrationService, *fakeAccountCreator, *fakeCodeSender) {
	creator := &fakeAccountCreator{}
	codes := &fakeCodeSender{}
	service := NewRegistrationService(creator, creator, creator, codes, zerolog.Nop())
	return service, creator, codes
}

func TestRegisterStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account and sends the code", func(t *testing.T) {
		service, creator, codes := newRegistrationFixture()

		id, err := service.RegisterStudent(ctx, dto.StudentRegisterRequest{
			Name:       "Dupont",
			FirstName:  "Marie",
			Email:      "dupont@etu.test",
			Password:   "secret123",
			Department: "Computer Science",
			Languages:  []string{"French", "English"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)

		assert.Equal(t, models.RoleStudent, creator.user.Role)
		assert.False(t, creator.user.EmailVerified)
		assert.Equal(t, "Computer Science", creator.student.Department)
		assert.Equal(t, []string{"French", "English"}, creator.student.Languages)

		// Password stored hashed, never in the clear
		assert.NotEqual(t, "secret123", creator.user.Password)
		assert.True(t, auth.CheckPassword(creator.user.Password, "secret123"))

		assert.Equal(t, []int64{1}, codes.sentTo)
	})

	t.Run("a failed code send does not fail the registration", func(t *testing.T) {
		service, _, codes := newRegistrationFixture()
		codes.err = errors.New("smtp unavailable")

		_, err := service.RegisterStudent(ctx, dto.StudentRegisterRequest{
			Name: "Dupont", Email: "dupont@etu.test", Password: "secret123",
		})
		assert.NoError(t, err)
	})

	t.Run("an already registered email is a conflict", func(t *testing.T) {
		service, _, codes := newRegistrationFixture()

		_, err := service.RegisterStudent(ctx, dto.StudentRegisterRequest{
			Name: "Dupont", Email: "dupont@etu.test", Password: "secret123",
		})
		require.NoError(t, err)

		_, err = service.RegisterStudent(ctx, dto.StudentRegisterRequest{
			Name: "Durand", Email: "dupont@etu.test", Password: "other456",
		})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
		assert.Equal(t, []int64{1}, codes.sentTo)
	})

	t.Run("a store failure surfaces", func(t *testing.T) {
		service, creator, codes := newRegistrationFixture()
		creator.err = errors.New("duplicate email")

		_, err := service.RegisterStudent(ctx, dto.StudentRegisterRequest{
			Name: "Dupont", Email: "dupont@etu.test", Password: "secret123",
		})
		assert.Error(t, err)
		assert.Empty(t, codes.sentTo)
	})
}

func TestRegisterTeacher(t *testing.T) {
	ctx := context.Background()
	service, creator, codes := newRegistrationFixture()

	id, err := service.RegisterTeacher(ctx, dto.TeacherRegisterRequest{
		Name:       "Martin",
		Email:      "martin@univ.test",
		Password:   "secret123",
		Department: "Computer Science",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, models.RoleTeacher, creator.user.Role)
	assert.Equal(t, "Computer Science", creator.teacher.Department)
	assert.Equal(t, []int64{1}, codes.sentTo)
}

func TestRegisterEnterprise(t *testing.T) {
	ctx := context.Background()

	t.Run("starts pending with the logo stored", func(t *testing.T) {
		service, creator, _ := newRegistrationFixture()

		id, err := service.RegisterEnterprise(ctx, dto.EnterpriseRegisterRequest{
			Name:          "Acme",
			Email:         "contact@acme.test",
			Password:      "secret123",
			Matriculation: "123456789",
		}, []byte("png"), "image/png")
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)

		assert.Equal(t, models.RoleEnterprise, creator.user.Role)
		assert.Equal(t, models.EnterprisePending, creator.enterprise.State)
		assert.False(t, creator.enterprise.InPartnership)
		require.NotNil(t, creator.logo)
		assert.Equal(t, "image/png", creator.logo.ContentType)
	})

	t.Run("an email taken by another role is a conflict", func(t *testing.T) {
		service, _, _ := newRegistrationFixture()

		_, err := service.RegisterTeacher(ctx, dto.TeacherRegisterRequest{
			Name: "Martin", Email: "contact@acme.test", Password: "secret123",
		})
		require.NoError(t, err)

		_, err = service.RegisterEnterprise(ctx, dto.EnterpriseRegisterRequest{
			Name: "Acme", Email: "contact@acme.test", Password: "secret123",
		}, nil, "")
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("the logo is optional", func(t *testing.T) {
		service, creator, _ := newRegistrationFixture()

		_, err := service.RegisterEnterprise(ctx, dto.EnterpriseRegisterRequest{
			Name: "Acme", Email: "contact@acme.test", Password: "secret123",
		}, nil, "")
		require.NoError(t, err)
		assert.Nil(t, creator.logo)
	})
}
