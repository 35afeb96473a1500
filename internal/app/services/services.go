package services

import (
	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/repositories"
	"github.com/internlink/backend/internal/pkg/auth"
	"github.com/internlink/backend/internal/pkg/email"
	"github.com/internlink/backend/internal/pkg/realtime"
)

// Services holds all the service instances
type Services struct {
	AuthService         *AuthService
	RegistrationService *RegistrationService
	VerificationService *VerificationService
	OfferService        *OfferService
	ApplicationService  *ApplicationService
	PartnershipService  *PartnershipService
	NotificationService *NotificationService
	UserService         *UserService
	ReportService       *ReportService
}

// NewServices initializes all services
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	mailer email.Mailer,
	hub *realtime.Hub,
	logger zerolog.Logger,
) *Services {
	notificationService := NewNotificationService(repos.NotificationRepository, hub, logger)
	verificationService := NewVerificationService(repos.UserRepository, repos.VerificationTokenRepository, mailer, logger)

	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository, repos.StudentRepository, repos.TeacherRepository,
			verificationService, jwtService, logger),
		RegistrationService: NewRegistrationService(
			repos.StudentRepository, repos.TeacherRepository, repos.EnterpriseRepository,
			verificationService, logger),
		VerificationService: verificationService,
		OfferService: NewOfferService(
			repos.OfferRepository, repos.ConventionRepository, repos.EnterpriseRepository,
			repos.TeacherRepository, repos.StudentRepository, notificationService, mailer, logger),
		ApplicationService: NewApplicationService(
			repos.ApplicationRepository, repos.OfferRepository, repos.StudentRepository,
			repos.EnterpriseRepository, notificationService, logger),
		PartnershipService: NewPartnershipService(
			repos.EnterpriseRepository, repos.BlobRepository, repos.OfferRepository,
			notificationService, logger),
		NotificationService: notificationService,
		UserService: NewUserService(
			repos.UserRepository, repos.StudentRepository, repos.TeacherRepository,
			repos.BlobRepository, logger),
		ReportService: NewReportService(
			repos.ApplicationRepository, repos.StudentRepository, logger),
	}
}
