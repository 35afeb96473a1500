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

// ConventionRepository handles convention database operations
type ConventionRepository struct {
	db *pgxpool.Pool
}

// NewConventionRepository creates a new ConventionRepository
func NewConventionRepository(db *pgxpool.Pool) *ConventionRepository {
	return &ConventionRepository{db: db}
}

// CreateConvention attaches a pending convention with its PDF to an offer.
// An offer carries at most one convention.
func (r *ConventionRepository) CreateConvention(ctx context.Context, offerID int64, pdf []byte) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO conventions (offer_id, state, pdf)
		VALUES ($1, $2, $3)
		ON CONFLICT (offer_id) DO UPDATE SET state = EXCLUDED.state, pdf = EXCLUDED.pdf, reviewer_id = NULL
		RETURNING id`,
		offerID, models.ConventionPending, pdf).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating convention: %w", err)
	}

	return id, nil
}

// GetConventionByOfferID retrieves the convention of an offer without the PDF
func (r *ConventionRepository) GetConventionByOfferID(ctx context.Context, offerID int64) (*models.Convention, error) {
	convention := &models.Convention{}
	var hasPDF bool
	err := r.db.QueryRow(ctx, `
		SELECT id, offer_id, state, reviewer_id, pdf IS NOT NULL AND length(pdf) > 0
		FROM conventions
		WHERE offer_id = $1`,
		offerID).Scan(&convention.ID, &convention.OfferID, &convention.State, &convention.ReviewerID, &hasPDF)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConventionNotFound
		}
		return nil, fmt.Errorf("error getting convention: %w", err)
	}

	if hasPDF {
		// Marker byte so callers can tell a PDF exists without loading it
		convention.PDF = []byte{1}
	}

	return convention, nil
}

// GetConventionPDF loads the PDF document of an offer's convention
func (r *ConventionRepository) GetConventionPDF(ctx context.Context, offerID int64) ([]byte, error) {
	var pdf []byte
	err := r.db.QueryRow(ctx, `
		SELECT pdf FROM conventions WHERE offer_id = $1`,
		offerID).Scan(&pdf)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConventionNotFound
		}
		return nil, fmt.Errorf("error loading convention pdf: %w", err)
	}

	return pdf, nil
}

// UpdateConventionReview records a teacher decision on a convention
func (r *ConventionRepository) UpdateConventionReview(ctx context.Context, conventionID int64, state models.ConventionState, reviewerID int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE conventions SET state = $1, reviewer_id = $2 WHERE id = $3`,
		state, reviewerID, conventionID)
	if err != nil {
		return fmt.Errorf("error updating convention review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConventionNotFound
	}
	return nil
}
