package dto

// StudentRegisterRequest represents a student sign-up form
type StudentRegisterRequest struct {
	Name         string   `json:"name" binding:"required"`
	FirstName    string   `json:"firstName" binding:"required"`
	Email        string   `json:"email" binding:"required,email"`
	Password     string   `json:"password" binding:"required,min=6"`
	Department   string   `json:"department" binding:"required"`
	Sector       string   `json:"sector" binding:"required"`
	Languages    []string `json:"languages"`
	GithubLink   string   `json:"githubLink"`
	LinkedinLink string   `json:"linkedinLink"`
}

// TeacherRegisterRequest represents a teacher sign-up form
type TeacherRegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	FirstName  string `json:"firstName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Department string `json:"department" binding:"required"`
}

// EnterpriseRegisterRequest represents an enterprise sign-up form.
// Submitted as multipart/form-data so the logo can ride along.
type EnterpriseRegisterRequest struct {
	Name             string `form:"name" binding:"required"`
	Email            string `form:"email" binding:"required,email"`
	Password         string `form:"password" binding:"required,min=6"`
	Matriculation    string `form:"matriculation" binding:"required"`
	Contact          string `form:"contact" binding:"required"`
	Location         string `form:"location" binding:"required"`
	SectorOfActivity string `form:"sectorOfActivity"`
	City             string `form:"city"`
	Country          string `form:"country"`
}
