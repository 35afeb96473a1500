package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/pkg/apperrors"
)

type offerFixture struct {
	service     *OfferService
	offers      *fakeOfferStore
	conventions *fakeConventionStore
	enterprises *fakeEnterpriseStore
	teachers    *fakeTeacherStore
	students    *fakeStudentStore
	notifier    *fakeNotifier
	mailer      *fakeMailer
}

func newOfferFixture() *offerFixture {
	f := &offerFixture{
		offers:      newFakeOfferStore(),
		conventions: newFakeConventionStore(),
		enterprises: newFakeEnterpriseStore(),
		teachers:    newFakeTeacherStore(),
		students:    newFakeStudentStore(),
		notifier:    &fakeNotifier{},
		mailer:      &fakeMailer{},
	}
	f.service = NewOfferService(
		f.offers, f.conventions, f.enterprises, f.teachers, f.students,
		f.notifier, f.mailer, zerolog.Nop())
	return f
}

func (f *offerFixture) seedEnterprise(userID int64, name string) {
	f.enterprises.enterprises[userID] = &models.Enterprise{
		UserID:        userID,
		InPartnership: true,
		State:         models.EnterpriseApproved,
		User:          &models.User{ID: userID, Name: name, Email: name + "@corp.test"},
	}
}

func (f *offerFixture) seedTeacher(userID int64, department string) {
	f.teachers.teachers[userID] = &models.Teacher{
		UserID:     userID,
		Department: department,
		User:       &models.User{ID: userID, Name: "Martin"},
	}
}

func (f *offerFixture) seedPendingOffer(enterpriseID int64, domain string) *models.Offer {
	return f.offers.add(&models.Offer{
		Title:        "Backend internship",
		Domain:       domain,
		StartDate:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
		Status:       models.OfferPending,
		EnterpriseID: enterpriseID,
	})
}

func TestCreateOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending offer", func(t *testing.T) {
		f := newOfferFixture()

		offer, err := f.service.CreateOffer(ctx, 10, dto.OfferRequest{
			Title:     "Backend internship",
			Domain:    "Computer Science",
			StartDate: "2026-02-01",
			EndDate:   "2026-07-31",
		})
		require.NoError(t, err)
		assert.Equal(t, models.OfferPending, offer.Status)
		assert.Equal(t, int64(10), offer.EnterpriseID)
		assert.NotZero(t, offer.ID)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		f := newOfferFixture()

		_, err := f.service.CreateOffer(ctx, 10, dto.OfferRequest{
			Title:     "Backend internship",
			Domain:    "Computer Science",
			StartDate: "01/02/2026",
			EndDate:   "2026-07-31",
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects an end date before the start date", func(t *testing.T) {
		f := newOfferFixture()

		_, err := f.service.CreateOffer(ctx, 10, dto.OfferRequest{
			Title:     "Backend internship",
			Domain:    "Computer Science",
			StartDate: "2026-07-31",
			EndDate:   "2026-02-01",
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestAttachConvention(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the PDF and alerts the department teachers", func(t *testing.T) {
		f := newOfferFixture()
		f.seedEnterprise(10, "Acme")
		f.seedTeacher(20, "Computer Science")
		f.seedTeacher(21, "Computer Science")
		f.seedTeacher(22, "Biology")
		offer := f.seedPendingOffer(10, "Computer Science")

		_, err := f.service.AttachConvention(ctx, offer.ID, []byte("%PDF-1.4"))
		require.NoError(t, err)

		convention, err := f.conventions.GetConventionByOfferID(ctx, offer.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ConventionPending, convention.State)

		assert.Equal(t, []string{"Nouvel arrivage d'offres"}, f.notifier.messagesFor(20))
		assert.Equal(t, []string{"Nouvel arrivage d'offres"}, f.notifier.messagesFor(21))
		assert.Empty(t, f.notifier.messagesFor(22))
	})

	t.Run("unknown offer fails", func(t *testing.T) {
		f := newOfferFixture()

		_, err := f.service.AttachConvention(ctx, 99, []byte("%PDF-1.4"))
		assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
	})
}

func TestListOffersToReview(t *testing.T) {
	ctx := context.Background()
	f := newOfferFixture()
	f.seedTeacher(20, "Computer Science")
	f.seedEnterprise(10, "Acme")
	f.seedPendingOffer(10, "Computer Science")
	f.seedPendingOffer(10, "Biology")

	offers, err := f.service.ListOffersToReview(ctx, 20)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "Computer Science", offers[0].Domain)
}

func TestListOpenOffers(t *testing.T) {
	ctx := context.Background()

	t.Run("on internship sees nothing", func(t *testing.T) {
		f := newOfferFixture()
		f.students.students[30] = &models.Student{UserID: 30, Department: "Computer Science", OnInternship: true}
		offer := f.seedPendingOffer(10, "Computer Science")
		offer.Status = models.OfferApproved

		offers, err := f.service.ListOpenOffers(ctx, 30)
		require.NoError(t, err)
		assert.Empty(t, offers)
	})

	t.Run("department filter applies", func(t *testing.T) {
		f := newOfferFixture()
		f.students.students[30] = &models.Student{UserID: 30, Department: "Computer Science"}
		approved := f.seedPendingOffer(10, "Computer Science")
		approved.Status = models.OfferApproved
		f.seedPendingOffer(10, "Computer Science") // stays pending
		other := f.seedPendingOffer(10, "Biology")
		other.Status = models.OfferApproved

		offers, err := f.service.ListOpenOffers(ctx, 30)
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, approved.ID, offers[0].ID)
	})
}

func TestValidateOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("approving offer and convention notifies department students", func(t *testing.T) {
		f := newOfferFixture()
		f.seedEnterprise(10, "Acme")
		f.seedTeacher(20, "Computer Science")
		f.students.students[30] = &models.Student{UserID: 30, Department: "Computer Science"}
		f.students.students[31] = &models.Student{UserID: 31, Department: "Biology"}
		offer := f.seedPendingOffer(10, "Computer Science")
		_, err := f.conventions.CreateConvention(ctx, offer.ID, []byte("%PDF-1.4"))
		require.NoError(t, err)

		status, conventionState, err := f.service.ValidateOffer(ctx, 20, offer.ID, dto.OfferValidationRequest{
			OfferApproved:      true,
			ConventionApproved: true,
		})
		require.NoError(t, err)
		assert.Equal(t, models.OfferApproved, status)
		assert.Equal(t, models.ConventionApproved, conventionState)

		// Reviewer recorded on both the offer and the convention
		require.NotNil(t, offer.ValidatedByID)
		assert.Equal(t, int64(20), *offer.ValidatedByID)
		convention, err := f.conventions.GetConventionByOfferID(ctx, offer.ID)
		require.NoError(t, err)
		require.NotNil(t, convention.ReviewerID)
		assert.Equal(t, int64(20), *convention.ReviewerID)

		// Enterprise gets the reviewed notice, department students the announcement
		assert.Len(t, f.notifier.messagesFor(10), 1)
		assert.Len(t, f.notifier.messagesFor(30), 1)
		assert.Empty(t, f.notifier.messagesFor(31))
		assert.Equal(t, []string{"Acme@corp.test"}, f.mailer.roleNotices)
	})

	t.Run("rejection notifies the enterprise twice, never the students", func(t *testing.T) {
		f := newOfferFixture()
		f.seedEnterprise(10, "Acme")
		f.seedTeacher(20, "Computer Science")
		f.students.students[30] = &models.Student{UserID: 30, Department: "Computer Science"}
		offer := f.seedPendingOffer(10, "Computer Science")
		_, err := f.conventions.CreateConvention(ctx, offer.ID, []byte("%PDF-1.4"))
		require.NoError(t, err)

		status, conventionState, err := f.service.ValidateOffer(ctx, 20, offer.ID, dto.OfferValidationRequest{
			OfferApproved:      false,
			ConventionApproved: true,
		})
		require.NoError(t, err)
		assert.Equal(t, models.OfferRejected, status)
		assert.Equal(t, models.ConventionApproved, conventionState)

		assert.Len(t, f.notifier.messagesFor(10), 2)
		assert.Empty(t, f.notifier.messagesFor(30))
	})

	t.Run("a rejected convention blocks the announcement even when the offer passes", func(t *testing.T) {
		f := newOfferFixture()
		f.seedEnterprise(10, "Acme")
		f.seedTeacher(20, "Computer Science")
		f.students.students[30] = &models.Student{UserID: 30, Department: "Computer Science"}
		offer := f.seedPendingOffer(10, "Computer Science")
		_, err := f.conventions.CreateConvention(ctx, offer.ID, []byte("%PDF-1.4"))
		require.NoError(t, err)

		status, conventionState, err := f.service.ValidateOffer(ctx, 20, offer.ID, dto.OfferValidationRequest{
			OfferApproved:      true,
			ConventionApproved: false,
		})
		require.NoError(t, err)
		assert.Equal(t, models.OfferApproved, status)
		assert.Equal(t, models.ConventionRejected, conventionState)

		convention, err := f.conventions.GetConventionByOfferID(ctx, offer.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ConventionRejected, convention.State)

		assert.Len(t, f.notifier.messagesFor(10), 2)
		assert.Empty(t, f.notifier.messagesFor(30))
	})

	t.Run("without convention the reviewer is not recorded", func(t *testing.T) {
		f := newOfferFixture()
		f.seedEnterprise(10, "Acme")
		f.seedTeacher(20, "Computer Science")
		offer := f.seedPendingOffer(10, "Computer Science")

		status, conventionState, err := f.service.ValidateOffer(ctx, 20, offer.ID, dto.OfferValidationRequest{
			OfferApproved: true,
		})
		require.NoError(t, err)
		assert.Equal(t, models.OfferApproved, status)
		assert.Equal(t, models.ConventionState(""), conventionState)
		assert.Nil(t, offer.ValidatedByID)
	})

	t.Run("a reviewed offer cannot be reviewed again", func(t *testing.T) {
		f := newOfferFixture()
		f.seedEnterprise(10, "Acme")
		f.seedTeacher(20, "Computer Science")
		offer := f.seedPendingOffer(10, "Computer Science")
		offer.Status = models.OfferApproved

		_, _, err := f.service.ValidateOffer(ctx, 20, offer.ID, dto.OfferValidationRequest{OfferApproved: false})
		assert.ErrorIs(t, err, apperrors.ErrOfferAlreadyReviewed)
	})

	t.Run("an already reviewed convention keeps its state", func(t *testing.T) {
		f := newOfferFixture()
		f.seedEnterprise(10, "Acme")
		f.seedTeacher(20, "Computer Science")
		offer := f.seedPendingOffer(10, "Computer Science")
		_, err := f.conventions.CreateConvention(ctx, offer.ID, []byte("%PDF-1.4"))
		require.NoError(t, err)
		convention, err := f.conventions.GetConventionByOfferID(ctx, offer.ID)
		require.NoError(t, err)
		convention.State = models.ConventionRejected

		status, conventionState, err := f.service.ValidateOffer(ctx, 20, offer.ID, dto.OfferValidationRequest{
			OfferApproved:      true,
			ConventionApproved: true,
		})
		require.NoError(t, err)
		assert.Equal(t, models.OfferApproved, status)
		assert.Equal(t, models.ConventionRejected, conventionState)
		assert.Nil(t, offer.ValidatedByID)
	})
}
