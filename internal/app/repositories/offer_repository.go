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

// OfferRepository handles internship offer database operations
type OfferRepository struct {
	db *pgxpool.Pool
}

// NewOfferRepository creates a new OfferRepository
func NewOfferRepository(db *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{db: db}
}

const offerSelect = `
	SELECT o.id, o.title, o.description, o.domain, o.job, o.type_of_internship,
	       o.start_date, o.end_date, o.number_of_places, o.requirements,
	       o.remote, o.paying, o.status, o.enterprise_id, o.validated_by, o.created_at
	FROM offers o`

func scanOffer(row pgx.Row) (*models.Offer, error) {
	offer := &models.Offer{}
	err := row.Scan(
		&offer.ID, &offer.Title, &offer.Description, &offer.Domain, &offer.Job,
		&offer.TypeOfInternship, &offer.StartDate, &offer.EndDate, &offer.NumberOfPlaces,
		&offer.Requirements, &offer.Remote, &offer.Paying, &offer.Status,
		&offer.EnterpriseID, &offer.ValidatedByID, &offer.CreatedAt)
	if err != nil {
		return nil, err
	}
	return offer, nil
}

// CreateOffer inserts a new offer in pending state
func (r *OfferRepository) CreateOffer(ctx context.Context, offer *models.Offer) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO offers (title, description, domain, job, type_of_internship,
		                    start_date, end_date, number_of_places, requirements,
		                    remote, paying, status, enterprise_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		offer.Title, offer.Description, offer.Domain, offer.Job, offer.TypeOfInternship,
		offer.StartDate, offer.EndDate, offer.NumberOfPlaces, offer.Requirements,
		offer.Remote, offer.Paying, models.OfferPending, offer.EnterpriseID).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating offer: %w", err)
	}

	return id, nil
}

// GetOfferByID retrieves an offer by ID
func (r *OfferRepository) GetOfferByID(ctx context.Context, id int64) (*models.Offer, error) {
	row := r.db.QueryRow(ctx, offerSelect+` WHERE o.id = $1`, id)

	offer, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, fmt.Errorf("error getting offer: %w", err)
	}

	return offer, nil
}

// ListOffersByEnterprise lists the offers posted by an enterprise
func (r *OfferRepository) ListOffersByEnterprise(ctx context.Context, enterpriseID int64) ([]*models.Offer, error) {
	rows, err := r.db.Query(ctx, offerSelect+` WHERE o.enterprise_id = $1 ORDER BY o.created_at DESC`, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("error listing offers by enterprise: %w", err)
	}
	defer rows.Close()

	return collectOffers(rows)
}

// ListPendingOffersForReview lists pending offers in a domain posted by
// partnered enterprises. Teachers review the offers matching their department.
func (r *OfferRepository) ListPendingOffersForReview(ctx context.Context, domain string) ([]*models.Offer, error) {
	rows, err := r.db.Query(ctx, offerSelect+`
		JOIN enterprises e ON e.user_id = o.enterprise_id
		WHERE o.domain = $1 AND o.status = $2 AND e.in_partnership
		ORDER BY o.created_at`, domain, models.OfferPending)
	if err != nil {
		return nil, fmt.Errorf("error listing offers for review: %w", err)
	}
	defer rows.Close()

	return collectOffers(rows)
}

// ListOpenOffersForStudents lists offers in a domain whose offer and
// convention are both approved
func (r *OfferRepository) ListOpenOffersForStudents(ctx context.Context, domain string) ([]*models.Offer, error) {
	rows, err := r.db.Query(ctx, offerSelect+`
		JOIN conventions c ON c.offer_id = o.id
		WHERE o.status = $1 AND c.state = $2 AND o.domain = $3
		ORDER BY o.created_at DESC`, models.OfferApproved, models.ConventionApproved, domain)
	if err != nil {
		return nil, fmt.Errorf("error listing open offers: %w", err)
	}
	defer rows.Close()

	return collectOffers(rows)
}

// ListOffersValidatedBy lists approved offers reviewed by a given teacher
func (r *OfferRepository) ListOffersValidatedBy(ctx context.Context, teacherID int64) ([]*models.Offer, error) {
	rows, err := r.db.Query(ctx, offerSelect+`
		WHERE o.status = $1 AND o.validated_by = $2
		ORDER BY o.created_at DESC`, models.OfferApproved, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error listing validated offers: %w", err)
	}
	defer rows.Close()

	return collectOffers(rows)
}

// UpdateOfferReview records a teacher decision on an offer
func (r *OfferRepository) UpdateOfferReview(ctx context.Context, offerID int64, status models.OfferStatus, validatedBy *int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE offers SET status = $1, validated_by = COALESCE($2, validated_by) WHERE id = $3`,
		status, validatedBy, offerID)
	if err != nil {
		return fmt.Errorf("error updating offer review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrOfferNotFound
	}
	return nil
}

func collectOffers(rows pgx.Rows) ([]*models.Offer, error) {
	var offers []*models.Offer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning offer: %w", err)
		}
		offers = append(offers, offer)
	}
	return offers, rows.Err()
}
