package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository              *UserRepository
	StudentRepository           *StudentRepository
	TeacherRepository           *TeacherRepository
	EnterpriseRepository        *EnterpriseRepository
	OfferRepository             *OfferRepository
	ConventionRepository        *ConventionRepository
	ApplicationRepository       *ApplicationRepository
	NotificationRepository      *NotificationRepository
	VerificationTokenRepository *VerificationTokenRepository
	BlobRepository              *BlobRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:              NewUserRepository(db),
		StudentRepository:           NewStudentRepository(db),
		TeacherRepository:           NewTeacherRepository(db),
		EnterpriseRepository:        NewEnterpriseRepository(db),
		OfferRepository:             NewOfferRepository(db),
		ConventionRepository:        NewConventionRepository(db),
		ApplicationRepository:       NewApplicationRepository(db),
		NotificationRepository:      NewNotificationRepository(db),
		VerificationTokenRepository: NewVerificationTokenRepository(db),
		BlobRepository:              NewBlobRepository(db),
	}
}
