package dto

import (
	"time"

	"github.com/internlink/backend/internal/app/models"
)

const dateLayout = "2006-01-02"

// OfferRequest represents the payload an enterprise submits to post an offer
type OfferRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	Domain           string `json:"domain" binding:"required"`
	Job              string `json:"job"`
	Requirements     string `json:"requirements"`
	StartDate        string `json:"startDate" binding:"required"`
	EndDate          string `json:"endDate" binding:"required"`
	NumberOfPlaces   int    `json:"numberOfPlaces"`
	Paying           bool   `json:"paying"`
	Remote           bool   `json:"remote"`
	TypeOfInternship string `json:"typeOfInternship"`
}

// Dates parses the start and end dates of the request
func (r *OfferRequest) Dates() (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return
	}
	end, err = time.Parse(dateLayout, r.EndDate)
	return
}

// OfferValidationRequest carries a teacher's decision on an offer and its convention
type OfferValidationRequest struct {
	OfferApproved      bool `json:"offerApproved"`
	ConventionApproved bool `json:"conventionApproved"`
}

// ConventionResponse represents convention state attached to an offer
type ConventionResponse struct {
	ID     int64                  `json:"id"`
	State  models.ConventionState `json:"state"`
	HasPDF bool                   `json:"hasPdf"`
}

// MiniOfferResponse is the compact offer listing nested under an enterprise
type MiniOfferResponse struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Domain         string `json:"domain"`
	Job            string `json:"job"`
	NumberOfPlaces int    `json:"numberOfPlaces"`
}

// OfferResponse represents a full offer as returned by the API
type OfferResponse struct {
	ID                   int64                      `json:"id"`
	Title                string                     `json:"title"`
	Description          string                     `json:"description"`
	Domain               string                     `json:"domain"`
	Job                  string                     `json:"job"`
	TypeOfInternship     string                     `json:"typeOfInternship"`
	Requirements         string                     `json:"requirements"`
	NumberOfPlaces       int                        `json:"numberOfPlaces"`
	DurationOfInternship int64                      `json:"durationOfInternship"`
	StartDate            string                     `json:"startDate"`
	EndDate              string                     `json:"endDate"`
	Remote               bool                       `json:"remote"`
	Paying               bool                       `json:"paying"`
	Status               models.OfferStatus         `json:"status"`
	Enterprise           *EnterpriseSummaryResponse `json:"enterprise,omitempty"`
	Convention           *ConventionResponse        `json:"convention,omitempty"`
}

// FromOffer converts an offer model to its response representation.
// enterprise and convention may be nil when not loaded.
func FromOffer(offer *models.Offer, enterprise *models.Enterprise, convention *models.Convention) OfferResponse {
	resp := OfferResponse{
		ID:                   offer.ID,
		Title:                offer.Title,
		Description:          offer.Description,
		Domain:               offer.Domain,
		Job:                  offer.Job,
		TypeOfInternship:     offer.TypeOfInternship,
		Requirements:         offer.Requirements,
		NumberOfPlaces:       offer.NumberOfPlaces,
		DurationOfInternship: int64(offer.EndDate.Sub(offer.StartDate).Hours() / 24),
		StartDate:            offer.StartDate.Format(dateLayout),
		EndDate:              offer.EndDate.Format(dateLayout),
		Remote:               offer.Remote,
		Paying:               offer.Paying,
		Status:               offer.Status,
	}
	if enterprise != nil {
		summary := FromEnterpriseSummary(enterprise)
		resp.Enterprise = &summary
	}
	if convention != nil {
		resp.Convention = &ConventionResponse{
			ID:     convention.ID,
			State:  convention.State,
			HasPDF: len(convention.PDF) > 0,
		}
	}
	return resp
}

// FromOfferList converts a slice of offers without nested objects
func FromOfferList(offers []*models.Offer) []OfferResponse {
	result := make([]OfferResponse, 0, len(offers))
	for _, offer := range offers {
		result = append(result, FromOffer(offer, nil, nil))
	}
	return result
}

// FromMiniOffer converts an offer to its compact representation
func FromMiniOffer(offer *models.Offer) MiniOfferResponse {
	return MiniOfferResponse{
		ID:             offer.ID,
		Title:          offer.Title,
		Description:    offer.Description,
		Domain:         offer.Domain,
		Job:            offer.Job,
		NumberOfPlaces: offer.NumberOfPlaces,
	}
}
