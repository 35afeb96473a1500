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

// BlobRepository handles enterprise logos and profile photos, both stored
// inline in the database
type BlobRepository struct {
	db *pgxpool.Pool
}

// NewBlobRepository creates a new BlobRepository
func NewBlobRepository(db *pgxpool.Pool) *BlobRepository {
	return &BlobRepository{db: db}
}

// UpsertLogo stores or replaces the logo of an enterprise
func (r *BlobRepository) UpsertLogo(ctx context.Context, enterpriseID int64, data []byte, contentType string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO logos (enterprise_id, data, content_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (enterprise_id) DO UPDATE SET data = EXCLUDED.data, content_type = EXCLUDED.content_type`,
		enterpriseID, data, contentType)

	if err != nil {
		return fmt.Errorf("error storing logo: %w", err)
	}

	return nil
}

// GetLogo loads the logo of an enterprise
func (r *BlobRepository) GetLogo(ctx context.Context, enterpriseID int64) (*models.Logo, error) {
	logo := &models.Logo{}
	err := r.db.QueryRow(ctx, `
		SELECT id, enterprise_id, data, content_type
		FROM logos
		WHERE enterprise_id = $1`,
		enterpriseID).Scan(&logo.ID, &logo.EnterpriseID, &logo.Data, &logo.ContentType)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLogoNotFound
		}
		return nil, fmt.Errorf("error loading logo: %w", err)
	}

	return logo, nil
}

// HasLogo reports whether an enterprise has a logo stored
func (r *BlobRepository) HasLogo(ctx context.Context, enterpriseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM logos WHERE enterprise_id = $1)`,
		enterpriseID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking logo: %w", err)
	}

	return exists, nil
}

// UpsertProfilePhoto stores or replaces the profile photo of a user
func (r *BlobRepository) UpsertProfilePhoto(ctx context.Context, photo *models.ProfilePhoto) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO profile_photos (user_id, file_name, content_type, data, uploaded_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE
			SET file_name = EXCLUDED.file_name,
			    content_type = EXCLUDED.content_type,
			    data = EXCLUDED.data,
			    uploaded_at = NOW()`,
		photo.UserID, photo.FileName, photo.ContentType, photo.Data)

	if err != nil {
		return fmt.Errorf("error storing profile photo: %w", err)
	}

	return nil
}

// GetProfilePhoto loads the profile photo of a user
func (r *BlobRepository) GetProfilePhoto(ctx context.Context, userID int64) (*models.ProfilePhoto, error) {
	photo := &models.ProfilePhoto{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, file_name, content_type, data, uploaded_at
		FROM profile_photos
		WHERE user_id = $1`,
		userID).Scan(&photo.ID, &photo.UserID, &photo.FileName, &photo.ContentType, &photo.Data, &photo.UploadedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error loading profile photo: %w", err)
	}

	return photo, nil
}

// DeleteProfilePhoto removes the profile photo of a user
func (r *BlobRepository) DeleteProfilePhoto(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM profile_photos WHERE user_id = $1`,
		userID)

	if err != nil {
		return fmt.Errorf("error deleting profile photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
