package models

// Role defines the user role type
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleTeacher    Role = "TEACHER"
	RoleEnterprise Role = "ENTERPRISE"
	RoleAdmin      Role = "ADMIN"
)

// OfferStatus defines the lifecycle state of an offer.
// An offer is reviewed exactly once: PENDING moves to APPROVED or
// REJECTED and never back.
type OfferStatus string

const (
	OfferPending  OfferStatus = "PENDING"
	OfferApproved OfferStatus = "APPROVED"
	OfferRejected OfferStatus = "REJECTED"
)

// ApplicationState defines the lifecycle state of an application
type ApplicationState string

const (
	ApplicationPending   ApplicationState = "PENDING"
	ApplicationApproved  ApplicationState = "APPROVED"
	ApplicationRejected  ApplicationState = "REJECTED"
	ApplicationCancelled ApplicationState = "CANCELLED"
)

// ConventionState defines the review state of a signed convention
type ConventionState string

const (
	ConventionPending  ConventionState = "PENDING"
	ConventionApproved ConventionState = "APPROVED"
	ConventionRejected ConventionState = "REJECTED"
)

// EnterpriseState defines the partnership review state of an enterprise
type EnterpriseState string

const (
	EnterprisePending  EnterpriseState = "PENDING"
	EnterpriseApproved EnterpriseState = "APPROVED"
	EnterpriseRejected EnterpriseState = "REJECTED"
)

// DepartmentInternshipStat is one row of the per-department internship chart
type DepartmentInternshipStat struct {
	Department   string
	StudentCount int64
	OnInternship int64
}
