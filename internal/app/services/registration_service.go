package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/app/repositories"
	"github.com/internlink/backend/internal/pkg/auth"
)

type studentCreator interface {
	CreateStudent(ctx context.Context, user *models.User, student *models.Student) (int64, error)
}

type teacherCreator interface {
	CreateTeacher(ctx context.Context, user *models.User, teacher *models.Teacher) (int64, error)
}

type enterpriseCreator interface {
	CreateEnterprise(ctx context.Context, user *models.User, enterprise *models.Enterprise, logo *models.Logo) (int64, error)
}

type codeSender interface {
	SendNewCode(ctx context.Context, user *models.User) error
}

var (
	_ studentCreator    = (*repositories.StudentRepository)(nil)
	_ teacherCreator    = (*repositories.TeacherRepository)(nil)
	_ enterpriseCreator = (*repositories.EnterpriseRepository)(nil)
	_ codeSender        = (*VerificationService)(nil)
)

// RegistrationService signs up the three self-service account types. Every
// new account starts unverified; a verification code goes out right away.
type RegistrationService struct {
	students     studentCreator
	teachers     teacherCreator
	enterprises  enterpriseCreator
	verification codeSender
	logger       zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	students studentCreator,
	teachers teacherCreator,
	enterprises enterpriseCreator,
	verification codeSender,
	logger zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		students:     students,
		teachers:     teachers,
		enterprises:  enterprises,
		verification: verification,
		logger:       logger,
	}
}

// RegisterStudent creates a student account and sends the verification code
func (s *RegistrationService) RegisterStudent(ctx context.Context, req dto.StudentRegisterRequest) (int64, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	user := &models.User{
		Name:      req.Name,
		FirstName: req.FirstName,
		Email:     req.Email,
		Password:  hash,
		Role:      models.RoleStudent,
	}
	student := &models.Student{
		Department:   req.Department,
		Sector:       req.Sector,
		Languages:    req.Languages,
		GithubLink:   req.GithubLink,
		LinkedinLink: req.LinkedinLink,
	}

	id, err := s.students.CreateStudent(ctx, user, student)
	if err != nil {
		return 0, err
	}
	user.ID = id

	s.sendCode(ctx, user)
	return id, nil
}

// RegisterTeacher creates a teacher account and sends the verification code
func (s *RegistrationService) RegisterTeacher(ctx context.Context, req dto.TeacherRegisterRequest) (int64, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	user := &models.User{
		Name:      req.Name,
		FirstName: req.FirstName,
		Email:     req.Email,
		Password:  hash,
		Role:      models.RoleTeacher,
	}
	teacher := &models.Teacher{
		Department: req.Department,
	}

	id, err := s.teachers.CreateTeacher(ctx, user, teacher)
	if err != nil {
		return 0, err
	}
	user.ID = id

	s.sendCode(ctx, user)
	return id, nil
}

// RegisterEnterprise creates an enterprise account, stores the optional logo
// and sends the verification code. The account starts outside the
// partnership; an admin decides on it separately.
func (s *RegistrationService) RegisterEnterprise(ctx context.Context, req dto.EnterpriseRegisterRequest, logoData []byte, logoContentType string) (int64, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleEnterprise,
	}
	enterprise := &models.Enterprise{
		Matriculation:    req.Matriculation,
		SectorOfActivity: req.SectorOfActivity,
		Contact:          req.Contact,
		Location:         req.Location,
		City:             req.City,
		Country:          req.Country,
		State:            models.EnterprisePending,
	}

	var logo *models.Logo
	if len(logoData) > 0 {
		logo = &models.Logo{
			Data:        logoData,
			ContentType: logoContentType,
		}
	}

	id, err := s.enterprises.CreateEnterprise(ctx, user, enterprise, logo)
	if err != nil {
		return 0, err
	}
	user.ID = id

	s.sendCode(ctx, user)
	return id, nil
}

func (s *RegistrationService) sendCode(ctx context.Context, user *models.User) {
	if err := s.verification.SendNewCode(ctx, user); err != nil {
		s.logger.Error().Err(err).
			Str("email", user.Email).
			Msg("Failed to send verification code after registration")
	}
}
