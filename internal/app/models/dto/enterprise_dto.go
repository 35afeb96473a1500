package dto

import "github.com/internlink/backend/internal/app/models"

// EnterpriseSummaryResponse is the compact enterprise view nested in offers
type EnterpriseSummaryResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	SectorOfActivity string `json:"sectorOfActivity"`
	InPartnership    bool   `json:"inPartnership"`
	Matriculation    string `json:"matriculation"`
	HasLogo          bool   `json:"hasLogo"`
}

// EnterpriseResponse represents a full enterprise profile with its offers
type EnterpriseResponse struct {
	ID               int64                  `json:"id"`
	Name             string                 `json:"name"`
	Email            string                 `json:"email"`
	SectorOfActivity string                 `json:"sectorOfActivity"`
	Contact          string                 `json:"contact"`
	Location         string                 `json:"location"`
	City             string                 `json:"city,omitempty"`
	Country          string                 `json:"country,omitempty"`
	InPartnership    bool                   `json:"inPartnership"`
	State            models.EnterpriseState `json:"state"`
	Matriculation    string                 `json:"matriculation"`
	HasLogo          bool                   `json:"hasLogo"`
	Offers           []MiniOfferResponse    `json:"offers,omitempty"`
}

// PartnershipDecisionRequest carries an admin's decision on an enterprise
type PartnershipDecisionRequest struct {
	Approved bool `json:"approved"`
}

// UpdateEnterpriseProfileRequest updates contact or location details
type UpdateEnterpriseProfileRequest struct {
	Contact  string `json:"contact"`
	Location string `json:"location"`
}

// FromEnterpriseSummary converts an enterprise to its compact representation
func FromEnterpriseSummary(enterprise *models.Enterprise) EnterpriseSummaryResponse {
	resp := EnterpriseSummaryResponse{
		ID:               enterprise.UserID,
		SectorOfActivity: enterprise.SectorOfActivity,
		InPartnership:    enterprise.InPartnership,
		Matriculation:    enterprise.Matriculation,
	}
	if enterprise.User != nil {
		resp.Name = enterprise.User.Name
		resp.Email = enterprise.User.Email
	}
	return resp
}

// FromEnterprise converts an enterprise to its full representation.
// offers may be nil when not loaded.
func FromEnterprise(enterprise *models.Enterprise, hasLogo bool, offers []*models.Offer) EnterpriseResponse {
	resp := EnterpriseResponse{
		ID:               enterprise.UserID,
		SectorOfActivity: enterprise.SectorOfActivity,
		Contact:          enterprise.Contact,
		Location:         enterprise.Location,
		City:             enterprise.City,
		Country:          enterprise.Country,
		InPartnership:    enterprise.InPartnership,
		State:            enterprise.State,
		Matriculation:    enterprise.Matriculation,
		HasLogo:          hasLogo,
	}
	if enterprise.User != nil {
		resp.Name = enterprise.User.Name
		resp.Email = enterprise.User.Email
	}
	for _, offer := range offers {
		resp.Offers = append(resp.Offers, FromMiniOffer(offer))
	}
	return resp
}

// FromEnterpriseList converts a slice of enterprises without offers
func FromEnterpriseList(enterprises []*models.Enterprise) []EnterpriseResponse {
	result := make([]EnterpriseResponse, 0, len(enterprises))
	for _, e := range enterprises {
		result = append(result, FromEnterprise(e, false, nil))
	}
	return result
}
