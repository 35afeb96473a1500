package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/repositories"
	"github.com/internlink/backend/internal/config"
	"github.com/internlink/backend/internal/pkg/auth"
)

// CreateAdminUser creates the administrator account if it does not exist yet.
// The admin is the only account never created through registration, so it is
// seeded verified.
func CreateAdminUser(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, cfg.Admin.Email)
	if err != nil {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}
	if exists {
		lgr.Debug().Str("email", cfg.Admin.Email).Msg("Admin account already present")
		return nil
	}

	passwordHash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Name:          "Administrator",
		Email:         cfg.Admin.Email,
		Password:      passwordHash,
		Role:          models.RoleAdmin,
		EmailVerified: true,
	}

	id, err := userRepo.CreateUser(ctx, admin)
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	lgr.Info().Int64("userID", id).Str("email", cfg.Admin.Email).Msg("Admin account created")
	return nil
}
