package dto

import "github.com/internlink/backend/internal/app/models"

// HasFiles flags which documents an application carries without
// serializing the blobs themselves
type HasFiles struct {
	CV          bool `json:"cv"`
	CoverLetter bool `json:"coverLetter"`
}

// StudentApplicationInfo is the student slice of an application response
type StudentApplicationInfo struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	FirstName    string `json:"firstName"`
	Email        string `json:"email"`
	OnInternship bool   `json:"onInternship"`
	Department   string `json:"department"`
	Sector       string `json:"sector"`
}

// ApplicationOfferInfo is the offer slice of an application response
type ApplicationOfferInfo struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Domain      string             `json:"domain"`
	Status      models.OfferStatus `json:"status"`
}

// ApplicationEnterpriseInfo is the enterprise slice of an application response
type ApplicationEnterpriseInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ApplicationResponse represents an application as returned by the API
type ApplicationResponse struct {
	ID         int64                      `json:"id"`
	State      models.ApplicationState    `json:"state"`
	HasFiles   HasFiles                   `json:"hasFiles"`
	Student    *StudentApplicationInfo    `json:"student,omitempty"`
	Offer      *ApplicationOfferInfo      `json:"offer,omitempty"`
	Enterprise *ApplicationEnterpriseInfo `json:"enterprise,omitempty"`
}

// FromApplication converts an application model to its response
// representation. student, offer and enterprise may be nil when not loaded.
func FromApplication(app *models.Application, student *models.Student, offer *models.Offer, enterprise *models.Enterprise) ApplicationResponse {
	resp := ApplicationResponse{
		ID:    app.ID,
		State: app.State,
		HasFiles: HasFiles{
			CV:          len(app.CV) > 0,
			CoverLetter: len(app.CoverLetter) > 0,
		},
	}
	if student != nil && student.User != nil {
		resp.Student = &StudentApplicationInfo{
			ID:           student.UserID,
			Name:         student.User.Name,
			FirstName:    student.User.FirstName,
			Email:        student.User.Email,
			OnInternship: student.OnInternship,
			Department:   student.Department,
			Sector:       student.Sector,
		}
	}
	if offer != nil {
		resp.Offer = &ApplicationOfferInfo{
			ID:          offer.ID,
			Title:       offer.Title,
			Description: offer.Description,
			Domain:      offer.Domain,
			Status:      offer.Status,
		}
	}
	if enterprise != nil && enterprise.User != nil {
		resp.Enterprise = &ApplicationEnterpriseInfo{
			ID:   enterprise.UserID,
			Name: enterprise.User.Name,
		}
	}
	return resp
}
