package models

import "time"

// Offer defines the internship offer model based on the 'offers' table
type Offer struct {
	ID               int64       `json:"id" db:"id"`
	Title            string      `json:"title" db:"title"`
	Description      string      `json:"description" db:"description"`
	Domain           string      `json:"domain" db:"domain"` // Academic department the offer targets
	Job              string      `json:"job" db:"job"`
	TypeOfInternship string      `json:"typeOfInternship" db:"type_of_internship"`
	StartDate        time.Time   `json:"startDate" db:"start_date"`
	EndDate          time.Time   `json:"endDate" db:"end_date"`
	NumberOfPlaces   int         `json:"numberOfPlaces" db:"number_of_places"`
	Requirements     string      `json:"requirements" db:"requirements"`
	Remote           bool        `json:"remote" db:"remote"`
	Paying           bool        `json:"paying" db:"paying"`
	Status           OfferStatus `json:"status" db:"status"`
	EnterpriseID     int64       `json:"enterpriseId" db:"enterprise_id"`
	ValidatedByID    *int64      `json:"validatedById,omitempty" db:"validated_by"` // Teacher user ID, set on review
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
}

// Application defines the application model based on the 'applications' table.
// EnterpriseID duplicates offer.enterprise_id so an enterprise can list its
// applications without joining through offers.
type Application struct {
	ID           int64            `json:"id" db:"id"`
	State        ApplicationState `json:"state" db:"state"`
	StudentID    int64            `json:"studentId" db:"student_id"`
	OfferID      int64            `json:"offerId" db:"offer_id"`
	EnterpriseID int64            `json:"enterpriseId" db:"enterprise_id"`
	CV           []byte           `json:"-" db:"cv"`
	CoverLetter  []byte           `json:"-" db:"cover_letter"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`

	Offer   *Offer `json:"offer,omitempty"`   // Relation, no db tag
	Student *User  `json:"student,omitempty"` // Relation, no db tag
}

// Convention defines the signed agreement attached to an offer, one-to-one
type Convention struct {
	ID         int64           `json:"id" db:"id"`
	State      ConventionState `json:"state" db:"state"`
	OfferID    int64           `json:"offerId" db:"offer_id"`
	ReviewerID *int64          `json:"reviewerId,omitempty" db:"reviewer_id"` // Teacher user ID, set on review
	PDF        []byte          `json:"-" db:"pdf"`
}
