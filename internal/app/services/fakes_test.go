package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/pkg/apperrors"
)

// In-memory fakes backing the service tests. Each fake implements matching
// store interfaces over plain maps, mirroring the row-level behavior of the
// SQL repositories.

type notifierCall struct {
	recipientID int64
	role        models.Role
	department  string
	message     string
}

type fakeNotifier struct {
	calls []notifierCall
}

func (f *fakeNotifier) Notify(_ context.Context, recipientID int64, role models.Role, department, message string) {
	f.calls = append(f.calls, notifierCall{recipientID, role, department, message})
}

func (f *fakeNotifier) messagesFor(recipientID int64) []string {
	var msgs []string
	for _, c := range f.calls {
		if c.recipientID == recipientID {
			msgs = append(msgs, c.message)
		}
	}
	return msgs
}

type sentMail struct {
	toEmail string
	code    string
}

type fakeMailer struct {
	verificationMails []sentMail
	roleNotices       []string
	failSend          bool
}

func (f *fakeMailer) SendVerificationCode(toEmail, _, code string) error {
	if f.failSend {
		return errSendFailed
	}
	f.verificationMails = append(f.verificationMails, sentMail{toEmail: toEmail, code: code})
	return nil
}

func (f *fakeMailer) SendRoleNotice(toEmail string, _ models.Role, _ string) error {
	f.roleNotices = append(f.roleNotices, toEmail)
	return nil
}

var errSendFailed = errors.New("smtp unavailable")

type fakeOfferStore struct {
	offers map[int64]*models.Offer
	nextID int64
}

func newFakeOfferStore() *fakeOfferStore {
	return &fakeOfferStore{offers: make(map[int64]*models.Offer), nextID: 1}
}

func (f *fakeOfferStore) add(offer *models.Offer) *models.Offer {
	offer.ID = f.nextID
	f.nextID++
	f.offers[offer.ID] = offer
	return offer
}

func (f *fakeOfferStore) CreateOffer(_ context.Context, offer *models.Offer) (int64, error) {
	f.add(offer)
	return offer.ID, nil
}

func (f *fakeOfferStore) GetOfferByID(_ context.Context, id int64) (*models.Offer, error) {
	offer, ok := f.offers[id]
	if !ok {
		return nil, apperrors.ErrOfferNotFound
	}
	return offer, nil
}

func (f *fakeOfferStore) ListOffersByEnterprise(_ context.Context, enterpriseID int64) ([]*models.Offer, error) {
	var result []*models.Offer
	for _, o := range f.sorted() {
		if o.EnterpriseID == enterpriseID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeOfferStore) ListPendingOffersForReview(_ context.Context, domain string) ([]*models.Offer, error) {
	var result []*models.Offer
	for _, o := range f.sorted() {
		if o.Domain == domain && o.Status == models.OfferPending {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeOfferStore) ListOpenOffersForStudents(_ context.Context, domain string) ([]*models.Offer, error) {
	var result []*models.Offer
	for _, o := range f.sorted() {
		if o.Domain == domain && o.Status == models.OfferApproved {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeOfferStore) ListOffersValidatedBy(_ context.Context, teacherID int64) ([]*models.Offer, error) {
	var result []*models.Offer
	for _, o := range f.sorted() {
		if o.ValidatedByID != nil && *o.ValidatedByID == teacherID && o.Status == models.OfferApproved {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeOfferStore) UpdateOfferReview(_ context.Context, offerID int64, status models.OfferStatus, validatedBy *int64) error {
	offer, ok := f.offers[offerID]
	if !ok {
		return apperrors.ErrOfferNotFound
	}
	offer.Status = status
	if validatedBy != nil {
		offer.ValidatedByID = validatedBy
	}
	return nil
}

func (f *fakeOfferStore) sorted() []*models.Offer {
	result := make([]*models.Offer, 0, len(f.offers))
	for _, o := range f.offers {
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

type fakeConventionStore struct {
	conventions map[int64]*models.Convention // keyed by offer ID
	nextID      int64
}

func newFakeConventionStore() *fakeConventionStore {
	return &fakeConventionStore{conventions: make(map[int64]*models.Convention), nextID: 1}
}

func (f *fakeConventionStore) CreateConvention(_ context.Context, offerID int64, pdf []byte) (int64, error) {
	convention := &models.Convention{
		ID:      f.nextID,
		OfferID: offerID,
		State:   models.ConventionPending,
		PDF:     pdf,
	}
	f.nextID++
	f.conventions[offerID] = convention
	return convention.ID, nil
}

func (f *fakeConventionStore) GetConventionByOfferID(_ context.Context, offerID int64) (*models.Convention, error) {
	convention, ok := f.conventions[offerID]
	if !ok {
		return nil, apperrors.ErrConventionNotFound
	}
	return convention, nil
}

func (f *fakeConventionStore) GetConventionPDF(_ context.Context, offerID int64) ([]byte, error) {
	convention, ok := f.conventions[offerID]
	if !ok {
		return nil, apperrors.ErrConventionNotFound
	}
	return convention.PDF, nil
}

func (f *fakeConventionStore) UpdateConventionReview(_ context.Context, conventionID int64, state models.ConventionState, reviewerID int64) error {
	for _, c := range f.conventions {
		if c.ID == conventionID {
			c.State = state
			c.ReviewerID = &reviewerID
			return nil
		}
	}
	return apperrors.ErrConventionNotFound
}

type fakeEnterpriseStore struct {
	enterprises map[int64]*models.Enterprise
}

func newFakeEnterpriseStore() *fakeEnterpriseStore {
	return &fakeEnterpriseStore{enterprises: make(map[int64]*models.Enterprise)}
}

func (f *fakeEnterpriseStore) GetEnterpriseByUserID(_ context.Context, userID int64) (*models.Enterprise, error) {
	enterprise, ok := f.enterprises[userID]
	if !ok {
		return nil, apperrors.ErrEnterpriseNotFound
	}
	return enterprise, nil
}

func (f *fakeEnterpriseStore) ListEnterprisesByState(_ context.Context, state models.EnterpriseState) ([]*models.Enterprise, error) {
	var result []*models.Enterprise
	for _, e := range f.enterprises {
		if e.State == state {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (f *fakeEnterpriseStore) ListPartneredEnterprises(_ context.Context) ([]*models.Enterprise, error) {
	var result []*models.Enterprise
	for _, e := range f.enterprises {
		if e.InPartnership {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (f *fakeEnterpriseStore) SetPartnershipState(_ context.Context, userID int64, state models.EnterpriseState, inPartnership bool) error {
	enterprise, ok := f.enterprises[userID]
	if !ok {
		return apperrors.ErrEnterpriseNotFound
	}
	enterprise.State = state
	enterprise.InPartnership = inPartnership
	return nil
}

func (f *fakeEnterpriseStore) UpdateContact(_ context.Context, userID int64, contact string) error {
	enterprise, ok := f.enterprises[userID]
	if !ok {
		return apperrors.ErrEnterpriseNotFound
	}
	enterprise.Contact = contact
	return nil
}

func (f *fakeEnterpriseStore) UpdateLocation(_ context.Context, userID int64, location string) error {
	enterprise, ok := f.enterprises[userID]
	if !ok {
		return apperrors.ErrEnterpriseNotFound
	}
	enterprise.Location = location
	return nil
}

type fakeLogoStore struct {
	logos map[int64]*models.Logo
}

func newFakeLogoStore() *fakeLogoStore {
	return &fakeLogoStore{logos: make(map[int64]*models.Logo)}
}

func (f *fakeLogoStore) UpsertLogo(_ context.Context, enterpriseID int64, data []byte, contentType string) error {
	f.logos[enterpriseID] = &models.Logo{
		EnterpriseID: enterpriseID,
		Data:         data,
		ContentType:  contentType,
	}
	return nil
}

func (f *fakeLogoStore) GetLogo(_ context.Context, enterpriseID int64) (*models.Logo, error) {
	logo, ok := f.logos[enterpriseID]
	if !ok {
		return nil, apperrors.ErrLogoNotFound
	}
	return logo, nil
}

func (f *fakeLogoStore) HasLogo(_ context.Context, enterpriseID int64) (bool, error) {
	_, ok := f.logos[enterpriseID]
	return ok, nil
}

type fakePhotoStore struct {
	photos map[int64]*models.ProfilePhoto
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{photos: make(map[int64]*models.ProfilePhoto)}
}

func (f *fakePhotoStore) UpsertProfilePhoto(_ context.Context, photo *models.ProfilePhoto) error {
	f.photos[photo.UserID] = photo
	return nil
}

func (f *fakePhotoStore) GetProfilePhoto(_ context.Context, userID int64) (*models.ProfilePhoto, error) {
	photo, ok := f.photos[userID]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return photo, nil
}

func (f *fakePhotoStore) DeleteProfilePhoto(_ context.Context, userID int64) error {
	if _, ok := f.photos[userID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(f.photos, userID)
	return nil
}

type fakeTeacherStore struct {
	teachers map[int64]*models.Teacher
}

func newFakeTeacherStore() *fakeTeacherStore {
	return &fakeTeacherStore{teachers: make(map[int64]*models.Teacher)}
}

func (f *fakeTeacherStore) GetTeacherByUserID(_ context.Context, userID int64) (*models.Teacher, error) {
	teacher, ok := f.teachers[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return teacher, nil
}

func (f *fakeTeacherStore) GetTeachersByDepartment(_ context.Context, department string) ([]*models.Teacher, error) {
	var result []*models.Teacher
	for _, t := range f.teachers {
		if t.Department == department {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (f *fakeTeacherStore) ListTeachers(_ context.Context, offset uint64, limit int) ([]*models.Teacher, int64, error) {
	all := make([]*models.Teacher, 0, len(f.teachers))
	for _, t := range f.teachers {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID < all[j].UserID })

	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return []*models.Teacher{}, total, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type fakeStudentStore struct {
	students map[int64]*models.Student
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student)}
}

func (f *fakeStudentStore) GetStudentByUserID(_ context.Context, userID int64) (*models.Student, error) {
	student, ok := f.students[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return student, nil
}

func (f *fakeStudentStore) GetStudentsByDepartment(_ context.Context, department string) ([]*models.Student, error) {
	var result []*models.Student
	for _, s := range f.students {
		if s.Department == department {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (f *fakeStudentStore) SetOnInternship(_ context.Context, userID int64, onInternship bool) error {
	student, ok := f.students[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	student.OnInternship = onInternship
	return nil
}

func (f *fakeStudentStore) ListStudents(_ context.Context, offset uint64, limit int) ([]*models.Student, int64, error) {
	all := make([]*models.Student, 0, len(f.students))
	for _, s := range f.students {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID < all[j].UserID })

	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return []*models.Student{}, total, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeStudentStore) UpdateLanguages(_ context.Context, userID int64, languages []string) error {
	student, ok := f.students[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	student.Languages = languages
	return nil
}

func (f *fakeStudentStore) UpdateGithubLink(_ context.Context, userID int64, link string) error {
	student, ok := f.students[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	student.GithubLink = link
	return nil
}

func (f *fakeStudentStore) UpdateLinkedinLink(_ context.Context, userID int64, link string) error {
	student, ok := f.students[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	student.LinkedinLink = link
	return nil
}

type fakeApplicationStore struct {
	applications map[int64]*models.Application
	nextID       int64
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{applications: make(map[int64]*models.Application), nextID: 1}
}

func (f *fakeApplicationStore) add(app *models.Application) *models.Application {
	app.ID = f.nextID
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now()
	}
	f.nextID++
	f.applications[app.ID] = app
	return app
}

func (f *fakeApplicationStore) CreateApplication(_ context.Context, app *models.Application) (int64, error) {
	f.add(app)
	return app.ID, nil
}

func (f *fakeApplicationStore) GetApplicationByID(_ context.Context, id int64) (*models.Application, error) {
	app, ok := f.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeApplicationStore) GetApplicationByIDAndState(_ context.Context, id int64, state models.ApplicationState) (*models.Application, error) {
	app, ok := f.applications[id]
	if !ok || app.State != state {
		return nil, apperrors.ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeApplicationStore) ListApplicationsByEnterprise(_ context.Context, enterpriseID int64) ([]*models.Application, error) {
	var result []*models.Application
	for _, a := range f.sortedByNewest() {
		if a.EnterpriseID == enterpriseID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeApplicationStore) ListApplicationsByStudentAndStates(_ context.Context, studentID int64, states []models.ApplicationState) ([]*models.Application, error) {
	wanted := make(map[models.ApplicationState]bool, len(states))
	for _, s := range states {
		wanted[s] = true
	}
	var result []*models.Application
	for _, a := range f.sortedByNewest() {
		if a.StudentID == studentID && wanted[a.State] {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeApplicationStore) HasActiveApplication(_ context.Context, studentID, offerID int64) (bool, error) {
	for _, a := range f.applications {
		if a.StudentID == studentID && a.OfferID == offerID &&
			(a.State == models.ApplicationPending || a.State == models.ApplicationApproved) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationStore) UpdateApplicationState(_ context.Context, id int64, state models.ApplicationState) error {
	app, ok := f.applications[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	app.State = state
	return nil
}

func (f *fakeApplicationStore) CancelOtherApprovedApplications(_ context.Context, studentID, keptApplicationID int64) (int64, error) {
	var cancelled int64
	for _, a := range f.applications {
		if a.StudentID == studentID && a.ID != keptApplicationID && a.State == models.ApplicationApproved {
			a.State = models.ApplicationCancelled
			cancelled++
		}
	}
	return cancelled, nil
}

func (f *fakeApplicationStore) DeleteApplication(_ context.Context, id int64) error {
	if _, ok := f.applications[id]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	delete(f.applications, id)
	return nil
}

func (f *fakeApplicationStore) GetApplicationCV(_ context.Context, id int64) ([]byte, error) {
	app, ok := f.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return app.CV, nil
}

func (f *fakeApplicationStore) GetApplicationCoverLetter(_ context.Context, id int64) ([]byte, error) {
	app, ok := f.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return app.CoverLetter, nil
}

// sortedByNewest mirrors the created_at DESC ordering of the SQL queries
func (f *fakeApplicationStore) sortedByNewest() []*models.Application {
	result := make([]*models.Application, 0, len(f.applications))
	for _, a := range f.applications {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserStore) add(user *models.User) *models.User {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) MarkEmailVerified(_ context.Context, userID int64) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.EmailVerified = true
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = passwordHash
	return nil
}

func (f *fakeUserStore) UpdateEmail(_ context.Context, userID int64, email string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	for _, u := range f.users {
		if u.ID != userID && u.Email == email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.Email = email
	return nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, userID int64) error {
	if _, ok := f.users[userID]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, userID)
	return nil
}

type fakeTokenStore struct {
	tokens map[int64]*models.VerificationToken // keyed by user ID
	nextID int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[int64]*models.VerificationToken), nextID: 1}
}

func (f *fakeTokenStore) UpsertToken(_ context.Context, userID int64, code string, expiresAt time.Time) error {
	if token, ok := f.tokens[userID]; ok {
		token.Code = code
		token.Used = false
		token.ExpiresAt = expiresAt
		return nil
	}
	f.tokens[userID] = &models.VerificationToken{
		ID:        f.nextID,
		UserID:    userID,
		Code:      code,
		ExpiresAt: expiresAt,
	}
	f.nextID++
	return nil
}

func (f *fakeTokenStore) GetTokenByUserID(_ context.Context, userID int64) (*models.VerificationToken, error) {
	token, ok := f.tokens[userID]
	if !ok {
		return nil, apperrors.ErrVerificationTokenNotFound
	}
	return token, nil
}

func (f *fakeTokenStore) MarkUsed(_ context.Context, tokenID int64) error {
	for _, token := range f.tokens {
		if token.ID == tokenID {
			token.Used = true
			return nil
		}
	}
	return apperrors.ErrVerificationTokenNotFound
}
