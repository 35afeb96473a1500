package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/pkg/apperrors"
)

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationSelect = `
	SELECT a.id, a.state, a.student_id, a.offer_id, a.enterprise_id,
	       length(a.cv) > 0, length(a.cover_letter) > 0, a.created_at
	FROM applications a`

func scanApplication(row pgx.Row) (*models.Application, error) {
	app := &models.Application{}
	var hasCV, hasCoverLetter *bool
	err := row.Scan(
		&app.ID, &app.State, &app.StudentID, &app.OfferID, &app.EnterpriseID,
		&hasCV, &hasCoverLetter, &app.CreatedAt)
	if err != nil {
		return nil, err
	}
	// Marker bytes so callers can tell documents exist without loading them
	if hasCV != nil && *hasCV {
		app.CV = []byte{1}
	}
	if hasCoverLetter != nil && *hasCoverLetter {
		app.CoverLetter = []byte{1}
	}
	return app, nil
}

// CreateApplication inserts a new pending application
func (r *ApplicationRepository) CreateApplication(ctx context.Context, app *models.Application) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO applications (state, student_id, offer_id, enterprise_id, cv, cover_letter)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		models.ApplicationPending, app.StudentID, app.OfferID, app.EnterpriseID,
		app.CV, app.CoverLetter).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating application: %w", err)
	}

	return id, nil
}

// GetApplicationByID retrieves an application by ID
func (r *ApplicationRepository) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	row := r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error getting application: %w", err)
	}

	return app, nil
}

// GetApplicationByIDAndState retrieves an application only when it is in the
// given state
func (r *ApplicationRepository) GetApplicationByIDAndState(ctx context.Context, id int64, state models.ApplicationState) (*models.Application, error) {
	row := r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1 AND a.state = $2`, id, state)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error getting application: %w", err)
	}

	return app, nil
}

// ListApplicationsByEnterprise lists all applications received by an enterprise
func (r *ApplicationRepository) ListApplicationsByEnterprise(ctx context.Context, enterpriseID int64) ([]*models.Application, error) {
	rows, err := r.db.Query(ctx, applicationSelect+` WHERE a.enterprise_id = $1 ORDER BY a.created_at DESC`, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("error listing applications by enterprise: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// ListApplicationsByStudentAndStates lists a student's applications in any of
// the given states
func (r *ApplicationRepository) ListApplicationsByStudentAndStates(ctx context.Context, studentID int64, states []models.ApplicationState) ([]*models.Application, error) {
	rows, err := r.db.Query(ctx, applicationSelect+` WHERE a.student_id = $1 AND a.state = ANY($2) ORDER BY a.created_at DESC`,
		studentID, states)
	if err != nil {
		return nil, fmt.Errorf("error listing applications by student: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// HasActiveApplication reports whether the student already has a pending or
// approved application for the offer
func (r *ApplicationRepository) HasActiveApplication(ctx context.Context, studentID, offerID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM applications
			WHERE student_id = $1 AND offer_id = $2 AND state = ANY($3))`,
		studentID, offerID,
		[]models.ApplicationState{models.ApplicationPending, models.ApplicationApproved}).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking existing application: %w", err)
	}

	return exists, nil
}

// UpdateApplicationState moves an application to a new state
func (r *ApplicationRepository) UpdateApplicationState(ctx context.Context, id int64, state models.ApplicationState) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE applications SET state = $1 WHERE id = $2`,
		state, id)
	if err != nil {
		return fmt.Errorf("error updating application state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// CancelOtherApprovedApplications cancels every approved application of the
// student except the one they accepted
func (r *ApplicationRepository) CancelOtherApprovedApplications(ctx context.Context, studentID, keptApplicationID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE applications SET state = $1
		WHERE student_id = $2 AND id <> $3 AND state = $4`,
		models.ApplicationCancelled, studentID, keptApplicationID, models.ApplicationApproved)
	if err != nil {
		return 0, fmt.Errorf("error cancelling sibling applications: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteApplication removes an application
func (r *ApplicationRepository) DeleteApplication(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM applications WHERE id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("error deleting application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// GetApplicationCV loads the CV document of an application
func (r *ApplicationRepository) GetApplicationCV(ctx context.Context, id int64) ([]byte, error) {
	return r.getDocument(ctx, id, "cv")
}

// GetApplicationCoverLetter loads the cover letter document of an application
func (r *ApplicationRepository) GetApplicationCoverLetter(ctx context.Context, id int64) ([]byte, error) {
	return r.getDocument(ctx, id, "cover_letter")
}

func (r *ApplicationRepository) getDocument(ctx context.Context, id int64, column string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM applications WHERE id = $1`, column),
		id).Scan(&data)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error loading application document: %w", err)
	}

	return data, nil
}

// InternshipExportRow is one internship line of the administrative export
type InternshipExportRow struct {
	StudentName    string
	StudentEmail   string
	Department     string
	EnterpriseName string
	OfferTitle     string
	Domain         string
	StartDate      string
	EndDate        string
	State          models.ApplicationState
}

// ListInternshipsForExport joins applications with students, offers and
// enterprises for the administrative report
func (r *ApplicationRepository) ListInternshipsForExport(ctx context.Context) ([]InternshipExportRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.name || ' ' || u.first_name, u.email, s.department,
		       eu.name, o.title, o.domain,
		       to_char(o.start_date, 'YYYY-MM-DD'), to_char(o.end_date, 'YYYY-MM-DD'),
		       a.state
		FROM applications a
		JOIN students s ON s.user_id = a.student_id
		JOIN users u ON u.id = s.user_id
		JOIN offers o ON o.id = a.offer_id
		JOIN users eu ON eu.id = a.enterprise_id
		WHERE a.state = $1
		ORDER BY s.department, u.name`,
		models.ApplicationApproved)
	if err != nil {
		return nil, fmt.Errorf("error listing internships for export: %w", err)
	}
	defer rows.Close()

	var result []InternshipExportRow
	for rows.Next() {
		var row InternshipExportRow
		if err := rows.Scan(&row.StudentName, &row.StudentEmail, &row.Department,
			&row.EnterpriseName, &row.OfferTitle, &row.Domain,
			&row.StartDate, &row.EndDate, &row.State); err != nil {
			return nil, fmt.Errorf("error scanning internship row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func collectApplications(rows pgx.Rows) ([]*models.Application, error) {
	var apps []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
