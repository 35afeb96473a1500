package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/app/repositories"
	"github.com/internlink/backend/internal/pkg/apperrors"
	"github.com/internlink/backend/internal/pkg/email"
)

type offerStore interface {
	CreateOffer(ctx context.Context, offer *models.Offer) (int64, error)
	GetOfferByID(ctx context.Context, id int64) (*models.Offer, error)
	ListOffersByEnterprise(ctx context.Context, enterpriseID int64) ([]*models.Offer, error)
	ListPendingOffersForReview(ctx context.Context, domain string) ([]*models.Offer, error)
	ListOpenOffersForStudents(ctx context.Context, domain string) ([]*models.Offer, error)
	ListOffersValidatedBy(ctx context.Context, teacherID int64) ([]*models.Offer, error)
	UpdateOfferReview(ctx context.Context, offerID int64, status models.OfferStatus, validatedBy *int64) error
}

type conventionStore interface {
	CreateConvention(ctx context.Context, offerID int64, pdf []byte) (int64, error)
	GetConventionByOfferID(ctx context.Context, offerID int64) (*models.Convention, error)
	GetConventionPDF(ctx context.Context, offerID int64) ([]byte, error)
	UpdateConventionReview(ctx context.Context, conventionID int64, state models.ConventionState, reviewerID int64) error
}

type offerEnterpriseStore interface {
	GetEnterpriseByUserID(ctx context.Context, userID int64) (*models.Enterprise, error)
}

type offerTeacherStore interface {
	GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
	GetTeachersByDepartment(ctx context.Context, department string) ([]*models.Teacher, error)
}

type offerStudentStore interface {
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetStudentsByDepartment(ctx context.Context, department string) ([]*models.Student, error)
}

var (
	_ offerStore           = (*repositories.OfferRepository)(nil)
	_ conventionStore      = (*repositories.ConventionRepository)(nil)
	_ offerEnterpriseStore = (*repositories.EnterpriseRepository)(nil)
	_ offerTeacherStore    = (*repositories.TeacherRepository)(nil)
	_ offerStudentStore    = (*repositories.StudentRepository)(nil)
)

// OfferService handles the offer lifecycle: posting, convention upload and
// the teacher review that gates what students see
type OfferService struct {
	offers      offerStore
	conventions conventionStore
	enterprises offerEnterpriseStore
	teachers    offerTeacherStore
	students    offerStudentStore
	notifier    Notifier
	mailer      email.Mailer
	logger      zerolog.Logger
}

// NewOfferService creates a new OfferService
func NewOfferService(
	offers offerStore,
	conventions conventionStore,
	enterprises offerEnterpriseStore,
	teachers offerTeacherStore,
	students offerStudentStore,
	notifier Notifier,
	mailer email.Mailer,
	logger zerolog.Logger,
) *OfferService {
	return &OfferService{
		offers:      offers,
		conventions: conventions,
		enterprises: enterprises,
		teachers:    teachers,
		students:    students,
		notifier:    notifier,
		mailer:      mailer,
		logger:      logger,
	}
}

// CreateOffer posts a new offer for the enterprise. It starts pending and
// stays invisible to students until a teacher approves it.
func (s *OfferService) CreateOffer(ctx context.Context, enterpriseID int64, req dto.OfferRequest) (*models.Offer, error) {
	start, end, err := req.Dates()
	if err != nil {
		return nil, apperrors.NewBadRequestError("dates must use the YYYY-MM-DD format")
	}
	if end.Before(start) {
		return nil, apperrors.NewBadRequestError("endDate must not precede startDate")
	}

	offer := &models.Offer{
		Title:            req.Title,
		Description:      req.Description,
		Domain:           req.Domain,
		Job:              req.Job,
		TypeOfInternship: req.TypeOfInternship,
		StartDate:        start,
		EndDate:          end,
		NumberOfPlaces:   req.NumberOfPlaces,
		Requirements:     req.Requirements,
		Remote:           req.Remote,
		Paying:           req.Paying,
		Status:           models.OfferPending,
		EnterpriseID:     enterpriseID,
	}

	id, err := s.offers.CreateOffer(ctx, offer)
	if err != nil {
		return nil, err
	}
	offer.ID = id

	return offer, nil
}

// AttachConvention stores the signed convention PDF on an offer and alerts
// the teachers of the matching department that there is something to review
func (s *OfferService) AttachConvention(ctx context.Context, offerID int64, pdf []byte) (*models.Offer, error) {
	offer, err := s.offers.GetOfferByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if len(pdf) > 0 {
		if _, err := s.conventions.CreateConvention(ctx, offerID, pdf); err != nil {
			return nil, err
		}
	}

	teachers, err := s.teachers.GetTeachersByDepartment(ctx, offer.Domain)
	if err != nil {
		return nil, err
	}
	for _, teacher := range teachers {
		s.notifier.Notify(ctx, teacher.UserID, models.RoleTeacher, teacher.Department, "Nouvel arrivage d'offres")
	}

	return offer, nil
}

// ListEnterpriseOffers lists the offers an enterprise has posted
func (s *OfferService) ListEnterpriseOffers(ctx context.Context, enterpriseID int64) ([]*models.Offer, error) {
	return s.offers.ListOffersByEnterprise(ctx, enterpriseID)
}

// ListOffersToReview lists the pending offers a teacher's department has to
// review. Only offers from partnered enterprises show up.
func (s *OfferService) ListOffersToReview(ctx context.Context, teacherID int64) ([]*models.Offer, error) {
	teacher, err := s.teachers.GetTeacherByUserID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return s.offers.ListPendingOffersForReview(ctx, teacher.Department)
}

// ListOffersApprovedByTeacher lists the approved offers this teacher reviewed
func (s *OfferService) ListOffersApprovedByTeacher(ctx context.Context, teacherID int64) ([]*models.Offer, error) {
	return s.offers.ListOffersValidatedBy(ctx, teacherID)
}

// ListOpenOffers lists the fully approved offers of the student's
// department. A student already on internship sees nothing.
func (s *OfferService) ListOpenOffers(ctx context.Context, studentID int64) ([]*models.Offer, error) {
	student, err := s.students.GetStudentByUserID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.OnInternship {
		return []*models.Offer{}, nil
	}
	return s.offers.ListOpenOffersForStudents(ctx, student.Department)
}

// GetOfferWithDetails loads an offer together with its enterprise and
// convention for the API response
func (s *OfferService) GetOfferWithDetails(ctx context.Context, offerID int64) (dto.OfferResponse, error) {
	offer, err := s.offers.GetOfferByID(ctx, offerID)
	if err != nil {
		return dto.OfferResponse{}, err
	}

	enterprise, err := s.enterprises.GetEnterpriseByUserID(ctx, offer.EnterpriseID)
	if err != nil {
		return dto.OfferResponse{}, err
	}

	convention, err := s.conventions.GetConventionByOfferID(ctx, offer.ID)
	if err != nil && !errors.Is(err, apperrors.ErrConventionNotFound) {
		return dto.OfferResponse{}, err
	}

	return dto.FromOffer(offer, enterprise, convention), nil
}

// GetConventionPDF loads the convention document of an offer
func (s *OfferService) GetConventionPDF(ctx context.Context, offerID int64) ([]byte, error) {
	return s.conventions.GetConventionPDF(ctx, offerID)
}

// ValidateOffer applies a teacher's decision to an offer and, when one is
// pending, its convention. An offer is reviewed exactly once. Students of
// the teacher's department only hear about it when both the offer and the
// convention come out approved.
func (s *OfferService) ValidateOffer(ctx context.Context, teacherID, offerID int64, req dto.OfferValidationRequest) (models.OfferStatus, models.ConventionState, error) {
	offer, err := s.offers.GetOfferByID(ctx, offerID)
	if err != nil {
		return "", "", err
	}

	if offer.Status != models.OfferPending {
		return "", "", apperrors.ErrOfferAlreadyReviewed
	}

	teacher, err := s.teachers.GetTeacherByUserID(ctx, teacherID)
	if err != nil {
		return "", "", err
	}

	newStatus := models.OfferRejected
	if req.OfferApproved {
		newStatus = models.OfferApproved
	}

	conventionState := models.ConventionState("")
	var validatedBy *int64

	convention, err := s.conventions.GetConventionByOfferID(ctx, offerID)
	if err != nil && !errors.Is(err, apperrors.ErrConventionNotFound) {
		return "", "", err
	}
	if convention != nil {
		conventionState = convention.State
		if convention.State == models.ConventionPending {
			conventionState = models.ConventionRejected
			if req.ConventionApproved {
				conventionState = models.ConventionApproved
			}
			if err := s.conventions.UpdateConventionReview(ctx, convention.ID, conventionState, teacherID); err != nil {
				return "", "", err
			}
			validatedBy = &teacherID
		}
	}

	if err := s.offers.UpdateOfferReview(ctx, offerID, newStatus, validatedBy); err != nil {
		return "", "", err
	}

	enterprise, err := s.enterprises.GetEnterpriseByUserID(ctx, offer.EnterpriseID)
	if err != nil {
		return "", "", err
	}

	teacherName := ""
	enterpriseName := ""
	enterpriseEmail := ""
	if teacher.User != nil {
		teacherName = teacher.User.Name
	}
	if enterprise.User != nil {
		enterpriseName = enterprise.User.Name
		enterpriseEmail = enterprise.User.Email
	}

	reviewedMsg := fmt.Sprintf("Your offer %s has been reviewed by the %s teacher.", offer.Title, teacherName)
	s.notifier.Notify(ctx, enterprise.UserID, models.RoleEnterprise, "", reviewedMsg)

	if newStatus == models.OfferApproved && conventionState == models.ConventionApproved {
		studentMsg := fmt.Sprintf("New offer approved by teacher: %s", teacherName)

		studentsInDepartment, err := s.students.GetStudentsByDepartment(ctx, teacher.Department)
		if err != nil {
			return "", "", err
		}
		for _, student := range studentsInDepartment {
			s.notifier.Notify(ctx, student.UserID, models.RoleStudent, student.Department, studentMsg)
		}
	} else {
		rejectedMsg := fmt.Sprintf("Your offer %q has been rejected by the %s teacher.", offer.Title, teacherName)
		s.notifier.Notify(ctx, enterprise.UserID, models.RoleEnterprise, "", rejectedMsg)
	}

	if enterpriseEmail != "" {
		if err := s.mailer.SendRoleNotice(enterpriseEmail, models.RoleEnterprise, enterpriseName); err != nil {
			s.logger.Error().Err(err).Str("email", enterpriseEmail).Msg("Failed to send review notice email")
		}
	}

	s.logger.Info().
		Int64("offerID", offerID).
		Int64("teacherID", teacherID).
		Str("status", string(newStatus)).
		Msg("Offer reviewed")

	return newStatus, conventionState, nil
}
