package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/app/repositories"
	"github.com/internlink/backend/internal/pkg/apperrors"
	"github.com/internlink/backend/internal/pkg/auth"
	"github.com/internlink/backend/internal/pkg/helpers"
)

type userStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateEmail(ctx context.Context, userID int64, email string) error
	DeleteUser(ctx context.Context, userID int64) error
}

type studentProfileStore interface {
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetStudentsByDepartment(ctx context.Context, department string) ([]*models.Student, error)
	ListStudents(ctx context.Context, offset uint64, limit int) ([]*models.Student, int64, error)
	UpdateLanguages(ctx context.Context, userID int64, languages []string) error
	UpdateGithubLink(ctx context.Context, userID int64, link string) error
	UpdateLinkedinLink(ctx context.Context, userID int64, link string) error
}

type teacherListStore interface {
	ListTeachers(ctx context.Context, offset uint64, limit int) ([]*models.Teacher, int64, error)
}

type profilePhotoStore interface {
	UpsertProfilePhoto(ctx context.Context, photo *models.ProfilePhoto) error
	GetProfilePhoto(ctx context.Context, userID int64) (*models.ProfilePhoto, error)
	DeleteProfilePhoto(ctx context.Context, userID int64) error
}

var (
	_ userStore           = (*repositories.UserRepository)(nil)
	_ studentProfileStore = (*repositories.StudentRepository)(nil)
	_ teacherListStore    = (*repositories.TeacherRepository)(nil)
	_ profilePhotoStore   = (*repositories.BlobRepository)(nil)
)

// UserService handles account level operations shared by every role
type UserService struct {
	users    userStore
	students studentProfileStore
	teachers teacherListStore
	photos   profilePhotoStore
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	users userStore,
	students studentProfileStore,
	teachers teacherListStore,
	photos profilePhotoStore,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		students: students,
		teachers: teachers,
		photos:   photos,
		logger:   logger,
	}
}

// GetCurrentUser loads the account behind a user ID
func (s *UserService) GetCurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// UpdatePassword replaces the password of an account
func (s *UserService) UpdatePassword(ctx context.Context, userID int64, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// VerifyPassword checks a password against the stored hash
func (s *UserService) VerifyPassword(ctx context.Context, userID int64, password string) (bool, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return auth.CheckPassword(user.Password, password), nil
}

// UpdateEmail replaces the email address of an account
func (s *UserService) UpdateEmail(ctx context.Context, userID int64, email string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateEmail(ctx, userID, email); err != nil {
		return nil, err
	}

	user.Email = email
	return user, nil
}

// DeleteAccount removes an account and everything attached to it
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	return s.users.DeleteUser(ctx, userID)
}

// GetStudentProfile loads a student profile by user ID
func (s *UserService) GetStudentProfile(ctx context.Context, userID int64) (*models.Student, error) {
	return s.students.GetStudentByUserID(ctx, userID)
}

// UpdateStudentLanguages replaces the language list of a student
func (s *UserService) UpdateStudentLanguages(ctx context.Context, userID int64, languages []string) error {
	if len(languages) == 0 {
		return apperrors.NewBadRequestError("languages must not be empty")
	}
	return s.students.UpdateLanguages(ctx, userID, languages)
}

// UpdateStudentGithubLink replaces the GitHub link of a student
func (s *UserService) UpdateStudentGithubLink(ctx context.Context, userID int64, link string) error {
	return s.students.UpdateGithubLink(ctx, userID, link)
}

// UpdateStudentLinkedinLink replaces the LinkedIn link of a student
func (s *UserService) UpdateStudentLinkedinLink(ctx context.Context, userID int64, link string) error {
	return s.students.UpdateLinkedinLink(ctx, userID, link)
}

// ListStudents returns a page of students for the admin directory
func (s *UserService) ListStudents(ctx context.Context, page, size int) ([]*models.Student, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	students, total, err := s.students.ListStudents(ctx, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return students, helpers.NewPaginationInfo(total, page, limit), nil
}

// ListDepartmentStudents returns every student enrolled in the given department.
func (s *UserService) ListDepartmentStudents(ctx context.Context, department string) ([]*models.Student, error) {
	return s.students.GetStudentsByDepartment(ctx, department)
}

// ListTeachers returns a page of teachers for the admin directory
func (s *UserService) ListTeachers(ctx context.Context, page, size int) ([]*models.Teacher, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	teachers, total, err := s.teachers.ListTeachers(ctx, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return teachers, helpers.NewPaginationInfo(total, page, limit), nil
}

// UploadProfilePhoto stores or replaces the profile photo of a user
func (s *UserService) UploadProfilePhoto(ctx context.Context, userID int64, fileName, contentType string, data []byte) error {
	if len(data) == 0 {
		return apperrors.NewBadRequestError("photo file must not be empty")
	}

	return s.photos.UpsertProfilePhoto(ctx, &models.ProfilePhoto{
		UserID:      userID,
		FileName:    fileName,
		ContentType: contentType,
		Data:        data,
	})
}

// GetProfilePhoto loads the profile photo of a user
func (s *UserService) GetProfilePhoto(ctx context.Context, userID int64) (*models.ProfilePhoto, error) {
	return s.photos.GetProfilePhoto(ctx, userID)
}

// DeleteProfilePhoto removes the profile photo of a user
func (s *UserService) DeleteProfilePhoto(ctx context.Context, userID int64) error {
	return s.photos.DeleteProfilePhoto(ctx, userID)
}
