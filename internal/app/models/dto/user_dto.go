package dto

import "github.com/internlink/backend/internal/app/models"

// StudentResponse represents a student profile as returned by the API
type StudentResponse struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	FirstName    string   `json:"firstName"`
	Email        string   `json:"email"`
	OnInternship bool     `json:"onInternship"`
	Department   string   `json:"department"`
	Sector       string   `json:"sector,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	GithubLink   string   `json:"githubLink,omitempty"`
	LinkedinLink string   `json:"linkedinLink,omitempty"`
}

// TeacherResponse represents a teacher profile as returned by the API
type TeacherResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	FirstName  string `json:"firstName"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// UserResponse represents basic account information for any role
type UserResponse struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	FirstName     string      `json:"firstName,omitempty"`
	Email         string      `json:"email"`
	Role          models.Role `json:"role"`
	EmailVerified bool        `json:"emailVerified"`
}

// LanguagesRequest updates the languages a student speaks
type LanguagesRequest struct {
	Languages []string `json:"languages" binding:"required"`
}

// GithubLinkRequest updates a student's GitHub link
type GithubLinkRequest struct {
	GithubLink string `json:"githubLink" binding:"required"`
}

// LinkedinLinkRequest updates a student's LinkedIn link
type LinkedinLinkRequest struct {
	LinkedinLink string `json:"linkedinLink" binding:"required"`
}

// FromStudent converts a student model to its response representation
func FromStudent(student *models.Student) StudentResponse {
	resp := StudentResponse{
		ID:           student.UserID,
		OnInternship: student.OnInternship,
		Department:   student.Department,
		Sector:       student.Sector,
		Languages:    student.Languages,
		GithubLink:   student.GithubLink,
		LinkedinLink: student.LinkedinLink,
	}
	if student.User != nil {
		resp.Name = student.User.Name
		resp.FirstName = student.User.FirstName
		resp.Email = student.User.Email
	}
	return resp
}

// FromStudentList converts a slice of students
func FromStudentList(students []*models.Student) []StudentResponse {
	result := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		result = append(result, FromStudent(s))
	}
	return result
}

// FromTeacher converts a teacher model to its response representation
func FromTeacher(teacher *models.Teacher) TeacherResponse {
	resp := TeacherResponse{
		ID:         teacher.UserID,
		Department: teacher.Department,
	}
	if teacher.User != nil {
		resp.Name = teacher.User.Name
		resp.FirstName = teacher.User.FirstName
		resp.Email = teacher.User.Email
	}
	return resp
}

// FromTeacherList converts a slice of teachers
func FromTeacherList(teachers []*models.Teacher) []TeacherResponse {
	result := make([]TeacherResponse, 0, len(teachers))
	for _, t := range teachers {
		result = append(result, FromTeacher(t))
	}
	return result
}

// FromUser converts a user model to its response representation
func FromUser(user *models.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		FirstName:     user.FirstName,
		Email:         user.Email,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
	}
}
