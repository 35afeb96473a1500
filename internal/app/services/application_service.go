package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/app/repositories"
	"github.com/internlink/backend/internal/pkg/apperrors"
)

type applicationStore interface {
	CreateApplication(ctx context.Context, app *models.Application) (int64, error)
	GetApplicationByID(ctx context.Context, id int64) (*models.Application, error)
	GetApplicationByIDAndState(ctx context.Context, id int64, state models.ApplicationState) (*models.Application, error)
	ListApplicationsByEnterprise(ctx context.Context, enterpriseID int64) ([]*models.Application, error)
	ListApplicationsByStudentAndStates(ctx context.Context, studentID int64, states []models.ApplicationState) ([]*models.Application, error)
	HasActiveApplication(ctx context.Context, studentID, offerID int64) (bool, error)
	UpdateApplicationState(ctx context.Context, id int64, state models.ApplicationState) error
	CancelOtherApprovedApplications(ctx context.Context, studentID, keptApplicationID int64) (int64, error)
	DeleteApplication(ctx context.Context, id int64) error
	GetApplicationCV(ctx context.Context, id int64) ([]byte, error)
	GetApplicationCoverLetter(ctx context.Context, id int64) ([]byte, error)
}

type applicationOfferStore interface {
	GetOfferByID(ctx context.Context, id int64) (*models.Offer, error)
}

type applicationStudentStore interface {
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	SetOnInternship(ctx context.Context, userID int64, onInternship bool) error
}

var (
	_ applicationStore        = (*repositories.ApplicationRepository)(nil)
	_ applicationOfferStore   = (*repositories.OfferRepository)(nil)
	_ applicationStudentStore = (*repositories.StudentRepository)(nil)
)

// ApplicationService handles the application lifecycle: submission, the
// enterprise decision and the student's final acceptance
type ApplicationService struct {
	applications applicationStore
	offers       applicationOfferStore
	students     applicationStudentStore
	enterprises  offerEnterpriseStore
	notifier     Notifier
	logger       zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applications applicationStore,
	offers applicationOfferStore,
	students applicationStudentStore,
	enterprises offerEnterpriseStore,
	notifier Notifier,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		offers:       offers,
		students:     students,
		enterprises:  enterprises,
		notifier:     notifier,
		logger:       logger,
	}
}

// SubmitApplication files a student's application for an offer. A student on
// internship cannot apply, and only one live application per offer is allowed.
func (s *ApplicationService) SubmitApplication(ctx context.Context, studentID, offerID int64, cv, coverLetter []byte) (*models.Application, error) {
	student, err := s.students.GetStudentByUserID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.OnInternship {
		return nil, apperrors.ErrAlreadyOnInternship
	}

	active, err := s.applications.HasActiveApplication(ctx, studentID, offerID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, apperrors.ErrDuplicateApplication
	}

	offer, err := s.offers.GetOfferByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	app := &models.Application{
		State:        models.ApplicationPending,
		StudentID:    studentID,
		OfferID:      offerID,
		EnterpriseID: offer.EnterpriseID,
		CV:           cv,
		CoverLetter:  coverLetter,
	}

	id, err := s.applications.CreateApplication(ctx, app)
	if err != nil {
		return nil, err
	}
	app.ID = id

	s.notifier.Notify(ctx, offer.EnterpriseID, models.RoleEnterprise, "",
		fmt.Sprintf("Nouvelle candidature reçue pour l'offre: %s", offer.Title))

	return app, nil
}

// DecideApplication records the enterprise decision on an application and
// tells the student. The decision can be made again; the last call wins.
func (s *ApplicationService) DecideApplication(ctx context.Context, enterpriseUserID, applicationID int64, approved bool) (string, error) {
	app, err := s.applications.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return "", err
	}

	enterprise, err := s.enterprises.GetEnterpriseByUserID(ctx, enterpriseUserID)
	if err != nil {
		return "", err
	}
	enterpriseName := ""
	if enterprise.User != nil {
		enterpriseName = enterprise.User.Name
	}

	newState := models.ApplicationRejected
	msg := fmt.Sprintf("Votre candidature a été rejetée et examinée par l'entreprise %s", enterpriseName)
	if approved {
		newState = models.ApplicationApproved
		msg = fmt.Sprintf("Votre candidature a été approuvée et examinée par l'entreprise %s", enterpriseName)
	}

	if err := s.applications.UpdateApplicationState(ctx, applicationID, newState); err != nil {
		return "", err
	}

	student, err := s.students.GetStudentByUserID(ctx, app.StudentID)
	if err != nil {
		return "", err
	}
	s.notifier.Notify(ctx, student.UserID, models.RoleStudent, student.Department, msg)

	return msg, nil
}

// AcceptInternship lets a student take up an approved application. Accepting
// puts the student on internship; declining changes nothing.
func (s *ApplicationService) AcceptInternship(ctx context.Context, studentID, applicationID int64, accepted bool) (*models.Application, error) {
	app, err := s.applications.GetApplicationByIDAndState(ctx, applicationID, models.ApplicationApproved)
	if err != nil {
		return nil, err
	}
	if app.StudentID != studentID {
		return nil, apperrors.ErrApplicationNotFound
	}

	if accepted {
		if err := s.students.SetOnInternship(ctx, studentID, true); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// ListApprovedApplications lists a student's approved applications. Once the
// student is on internship the other approved applications get cancelled and
// the listing comes back empty.
func (s *ApplicationService) ListApprovedApplications(ctx context.Context, studentID int64) ([]*models.Application, error) {
	student, err := s.students.GetStudentByUserID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	apps, err := s.applications.ListApplicationsByStudentAndStates(ctx, studentID,
		[]models.ApplicationState{models.ApplicationApproved})
	if err != nil {
		return nil, err
	}

	if student.OnInternship {
		if len(apps) > 0 {
			// The most recent approved application is the one the student
			// accepted; the rest are cancelled on this read
			if _, err := s.applications.CancelOtherApprovedApplications(ctx, studentID, apps[0].ID); err != nil {
				return nil, err
			}
		}
		return []*models.Application{}, nil
	}

	return apps, nil
}

// ListPendingApplications lists a student's pending and rejected
// applications, or nothing once they are on internship
func (s *ApplicationService) ListPendingApplications(ctx context.Context, studentID int64) ([]*models.Application, error) {
	student, err := s.students.GetStudentByUserID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.OnInternship {
		return []*models.Application{}, nil
	}

	return s.applications.ListApplicationsByStudentAndStates(ctx, studentID,
		[]models.ApplicationState{models.ApplicationPending, models.ApplicationRejected})
}

// ListEnterpriseApplications lists the applications an enterprise received,
// with the student and offer details joined in
func (s *ApplicationService) ListEnterpriseApplications(ctx context.Context, enterpriseUserID int64) ([]dto.ApplicationResponse, error) {
	apps, err := s.applications.ListApplicationsByEnterprise(ctx, enterpriseUserID)
	if err != nil {
		return nil, err
	}
	return s.buildResponses(ctx, apps)
}

// BuildApplicationResponses assembles full responses for a list of
// applications owned by one student
func (s *ApplicationService) BuildApplicationResponses(ctx context.Context, apps []*models.Application) ([]dto.ApplicationResponse, error) {
	return s.buildResponses(ctx, apps)
}

func (s *ApplicationService) buildResponses(ctx context.Context, apps []*models.Application) ([]dto.ApplicationResponse, error) {
	result := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		student, err := s.students.GetStudentByUserID(ctx, app.StudentID)
		if err != nil {
			return nil, err
		}
		offer, err := s.offers.GetOfferByID(ctx, app.OfferID)
		if err != nil {
			return nil, err
		}
		enterprise, err := s.enterprises.GetEnterpriseByUserID(ctx, app.EnterpriseID)
		if err != nil {
			return nil, err
		}
		result = append(result, dto.FromApplication(app, student, offer, enterprise))
	}
	return result, nil
}

// DeleteRejectedApplication removes one of the student's rejected applications
func (s *ApplicationService) DeleteRejectedApplication(ctx context.Context, studentID, applicationID int64) error {
	app, err := s.applications.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.StudentID != studentID {
		return apperrors.ErrApplicationNotFound
	}
	if app.State != models.ApplicationRejected {
		return apperrors.NewConflictError("only rejected applications can be deleted")
	}

	return s.applications.DeleteApplication(ctx, applicationID)
}

// GetApplicationCV loads the CV attached to an application
func (s *ApplicationService) GetApplicationCV(ctx context.Context, applicationID int64) ([]byte, error) {
	return s.applications.GetApplicationCV(ctx, applicationID)
}

// GetApplicationCoverLetter loads the cover letter attached to an application
func (s *ApplicationService) GetApplicationCoverLetter(ctx context.Context, applicationID int64) ([]byte, error) {
	return s.applications.GetApplicationCoverLetter(ctx, applicationID)
}
