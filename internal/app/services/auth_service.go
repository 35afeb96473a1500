package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/app/repositories"
	"github.com/internlink/backend/internal/pkg/apperrors"
	"github.com/internlink/backend/internal/pkg/auth"
)

type authUserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type departmentLookup interface {
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

type teacherDepartmentLookup interface {
	GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
}

var (
	_ authUserStore           = (*repositories.UserRepository)(nil)
	_ departmentLookup        = (*repositories.StudentRepository)(nil)
	_ teacherDepartmentLookup = (*repositories.TeacherRepository)(nil)
)

// AuthService handles login and password reset
type AuthService struct {
	users        authUserStore
	students     departmentLookup
	teachers     teacherDepartmentLookup
	verification codeSender
	jwtService   *auth.JWTService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users authUserStore,
	students departmentLookup,
	teachers teacherDepartmentLookup,
	verification codeSender,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:        users,
		students:     students,
		teachers:     teachers,
		verification: verification,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// Login authenticates a user and issues an access token. The department
// claim is filled for students and teachers only.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return dto.TokenResponse{}, apperrors.ErrInvalidCredentials
		}
		return dto.TokenResponse{}, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return dto.TokenResponse{}, apperrors.ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return dto.TokenResponse{}, apperrors.ErrEmailNotVerified
	}

	department, err := s.departmentFor(ctx, user)
	if err != nil {
		return dto.TokenResponse{}, err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, string(user.Role), department)
	if err != nil {
		return dto.TokenResponse{}, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User logged in")

	return dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtService.TokenTTL().Seconds()),
	}, nil
}

// RequestPasswordReset sends a fresh verification code to the user's mailbox
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.verification.SendNewCode(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ResetPassword replaces the password of the account behind the email
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, user.ID, hash)
}

func (s *AuthService) departmentFor(ctx context.Context, user *models.User) (string, error) {
	switch user.Role {
	case models.RoleStudent:
		student, err := s.students.GetStudentByUserID(ctx, user.ID)
		if err != nil {
			return "", err
		}
		return student.Department, nil
	case models.RoleTeacher:
		teacher, err := s.teachers.GetTeacherByUserID(ctx, user.ID)
		if err != nil {
			return "", err
		}
		return teacher.Department, nil
	default:
		return "", nil
	}
}
