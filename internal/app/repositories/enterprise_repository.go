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

// EnterpriseRepository handles enterprise database operations
type EnterpriseRepository struct {
	db *pgxpool.Pool
}

// NewEnterpriseRepository creates a new EnterpriseRepository
func NewEnterpriseRepository(db *pgxpool.Pool) *EnterpriseRepository {
	return &EnterpriseRepository{db: db}
}

const enterpriseSelect = `
	SELECT e.user_id, e.matriculation, e.sector_of_activity, e.contact, e.location,
	       e.city, e.country, e.in_partnership, e.state,
	       u.id, u.name, u.first_name, u.email, u.password, u.role, u.email_verified, u.created_at
	FROM enterprises e
	JOIN users u ON u.id = e.user_id`

func scanEnterprise(row pgx.Row) (*models.Enterprise, error) {
	enterprise := &models.Enterprise{User: &models.User{}}
	err := row.Scan(
		&enterprise.UserID, &enterprise.Matriculation, &enterprise.SectorOfActivity,
		&enterprise.Contact, &enterprise.Location, &enterprise.City, &enterprise.Country,
		&enterprise.InPartnership, &enterprise.State,
		&enterprise.User.ID, &enterprise.User.Name, &enterprise.User.FirstName, &enterprise.User.Email,
		&enterprise.User.Password, &enterprise.User.Role, &enterprise.User.EmailVerified, &enterprise.User.CreatedAt)
	if err != nil {
		return nil, err
	}
	return enterprise, nil
}

// CreateEnterprise creates the account row, the enterprise profile and the
// optional logo atomically
func (r *EnterpriseRepository) CreateEnterprise(ctx context.Context, user *models.User, enterprise *models.Enterprise, logo *models.Logo) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, user.Email).Scan(&exists); err != nil {
		return 0, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO users (name, first_name, email, password, role, email_verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		user.Name, user.FirstName, user.Email, user.Password, models.RoleEnterprise, user.EmailVerified).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO enterprises (user_id, matriculation, sector_of_activity, contact, location, city, country, in_partnership, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)`,
		id, enterprise.Matriculation, enterprise.SectorOfActivity, enterprise.Contact,
		enterprise.Location, enterprise.City, enterprise.Country, models.EnterprisePending)
	if err != nil {
		return 0, fmt.Errorf("error creating enterprise profile: %w", err)
	}

	if logo != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO logos (enterprise_id, data, content_type)
			VALUES ($1, $2, $3)`,
			id, logo.Data, logo.ContentType)
		if err != nil {
			return 0, fmt.Errorf("error storing logo: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing transaction: %w", err)
	}

	return id, nil
}

// GetEnterpriseByUserID retrieves an enterprise with the account joined in
func (r *EnterpriseRepository) GetEnterpriseByUserID(ctx context.Context, userID int64) (*models.Enterprise, error) {
	row := r.db.QueryRow(ctx, enterpriseSelect+` WHERE e.user_id = $1`, userID)

	enterprise, err := scanEnterprise(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnterpriseNotFound
		}
		return nil, fmt.Errorf("error getting enterprise: %w", err)
	}

	return enterprise, nil
}

// GetEnterpriseByEmail retrieves an enterprise by account email
func (r *EnterpriseRepository) GetEnterpriseByEmail(ctx context.Context, email string) (*models.Enterprise, error) {
	row := r.db.QueryRow(ctx, enterpriseSelect+` WHERE u.email = $1`, email)

	enterprise, err := scanEnterprise(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnterpriseNotFound
		}
		return nil, fmt.Errorf("error getting enterprise by email: %w", err)
	}

	return enterprise, nil
}

// ListEnterprisesByState lists enterprises in a given approval state
func (r *EnterpriseRepository) ListEnterprisesByState(ctx context.Context, state models.EnterpriseState) ([]*models.Enterprise, error) {
	rows, err := r.db.Query(ctx, enterpriseSelect+` WHERE e.state = $1 ORDER BY u.name`, state)
	if err != nil {
		return nil, fmt.Errorf("error listing enterprises: %w", err)
	}
	defer rows.Close()

	return collectEnterprises(rows)
}

// ListPartneredEnterprises lists enterprises currently in partnership
func (r *EnterpriseRepository) ListPartneredEnterprises(ctx context.Context) ([]*models.Enterprise, error) {
	rows, err := r.db.Query(ctx, enterpriseSelect+` WHERE e.in_partnership ORDER BY u.name`)
	if err != nil {
		return nil, fmt.Errorf("error listing partnered enterprises: %w", err)
	}
	defer rows.Close()

	return collectEnterprises(rows)
}

// SetPartnershipState records an admin decision on an enterprise
func (r *EnterpriseRepository) SetPartnershipState(ctx context.Context, userID int64, state models.EnterpriseState, inPartnership bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE enterprises SET state = $1, in_partnership = $2 WHERE user_id = $3`,
		state, inPartnership, userID)
	if err != nil {
		return fmt.Errorf("error updating partnership state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnterpriseNotFound
	}
	return nil
}

// UpdateContact replaces the contact details of an enterprise
func (r *EnterpriseRepository) UpdateContact(ctx context.Context, userID int64, contact string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE enterprises SET contact = $1 WHERE user_id = $2`,
		contact, userID)
	if err != nil {
		return fmt.Errorf("error updating contact: %w", err)
	}
	return nil
}

// UpdateLocation replaces the location of an enterprise
func (r *EnterpriseRepository) UpdateLocation(ctx context.Context, userID int64, location string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE enterprises SET location = $1 WHERE user_id = $2`,
		location, userID)
	if err != nil {
		return fmt.Errorf("error updating location: %w", err)
	}
	return nil
}

func collectEnterprises(rows pgx.Rows) ([]*models.Enterprise, error) {
	var enterprises []*models.Enterprise
	for rows.Next() {
		enterprise, err := scanEnterprise(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning enterprise: %w", err)
		}
		enterprises = append(enterprises, enterprise)
	}
	return enterprises, rows.Err()
}
