package models

import (
	"time"
)

// User defines the shared identity model based on the 'users' table.
// Role-specific data lives in the students/teachers/enterprises tables,
// keyed by user_id.
type User struct {
	ID            int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Name          string    `json:"name" db:"name" example:"Doe"`                             // Last name (or company name for enterprises)
	FirstName     string    `json:"firstName" db:"first_name" example:"John"`                 // First name (empty for enterprises)
	Email         string    `json:"email" db:"email" example:"user@school.edu"`               // User's email address (unique)
	Password      string    `json:"-" db:"password"`                                          // bcrypt hash (excluded from JSON)
	Role          Role      `json:"role" db:"role" example:"STUDENT"`                         // STUDENT, TEACHER, ENTERPRISE or ADMIN
	EmailVerified bool      `json:"emailVerified" db:"email_verified" example:"true"`         // Whether the email was verified with a code
	CreatedAt     time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the account was created
}

// Student defines the student payload based on the 'students' table
type Student struct {
	UserID       int64    `json:"userId" db:"user_id"`
	Department   string   `json:"department" db:"department"`
	Sector       string   `json:"sector" db:"sector"`
	OnInternship bool     `json:"onInternship" db:"on_internship"`
	Languages    []string `json:"languages" db:"languages"`
	GithubLink   string   `json:"githubLink,omitempty" db:"github_link"`
	LinkedinLink string   `json:"linkedinLink,omitempty" db:"linkedin_link"`

	User *User `json:"user,omitempty"` // Relation, no db tag
}

// Teacher defines the teacher payload based on the 'teachers' table
type Teacher struct {
	UserID     int64  `json:"userId" db:"user_id"`
	Department string `json:"department" db:"department"`

	User *User `json:"user,omitempty"` // Relation, no db tag
}

// Enterprise defines the enterprise payload based on the 'enterprises' table
type Enterprise struct {
	UserID           int64           `json:"userId" db:"user_id"`
	Matriculation    string          `json:"matriculation" db:"matriculation"`
	SectorOfActivity string          `json:"sectorOfActivity" db:"sector_of_activity"`
	Contact          string          `json:"contact" db:"contact"`
	Location         string          `json:"location" db:"location"`
	City             string          `json:"city" db:"city"`
	Country          string          `json:"country" db:"country"`
	InPartnership    bool            `json:"inPartnership" db:"in_partnership"`
	State            EnterpriseState `json:"state" db:"state"`

	User *User `json:"user,omitempty"` // Relation, no db tag
}
