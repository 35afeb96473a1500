package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/app/repositories"
	"github.com/internlink/backend/internal/pkg/apperrors"
)

type partnershipEnterpriseStore interface {
	GetEnterpriseByUserID(ctx context.Context, userID int64) (*models.Enterprise, error)
	ListEnterprisesByState(ctx context.Context, state models.EnterpriseState) ([]*models.Enterprise, error)
	ListPartneredEnterprises(ctx context.Context) ([]*models.Enterprise, error)
	SetPartnershipState(ctx context.Context, userID int64, state models.EnterpriseState, inPartnership bool) error
	UpdateContact(ctx context.Context, userID int64, contact string) error
	UpdateLocation(ctx context.Context, userID int64, location string) error
}

type logoStore interface {
	UpsertLogo(ctx context.Context, enterpriseID int64, data []byte, contentType string) error
	GetLogo(ctx context.Context, enterpriseID int64) (*models.Logo, error)
	HasLogo(ctx context.Context, enterpriseID int64) (bool, error)
}

type partnershipOfferStore interface {
	ListOffersByEnterprise(ctx context.Context, enterpriseID int64) ([]*models.Offer, error)
}

var (
	_ partnershipEnterpriseStore = (*repositories.EnterpriseRepository)(nil)
	_ logoStore                  = (*repositories.BlobRepository)(nil)
	_ partnershipOfferStore      = (*repositories.OfferRepository)(nil)
)

// PartnershipService manages enterprise profiles and the admin decision
// that lets an enterprise into the partnership
type PartnershipService struct {
	enterprises partnershipEnterpriseStore
	logos       logoStore
	offers      partnershipOfferStore
	notifier    Notifier
	logger      zerolog.Logger
}

// NewPartnershipService creates a new PartnershipService
func NewPartnershipService(
	enterprises partnershipEnterpriseStore,
	logos logoStore,
	offers partnershipOfferStore,
	notifier Notifier,
	logger zerolog.Logger,
) *PartnershipService {
	return &PartnershipService{
		enterprises: enterprises,
		logos:       logos,
		offers:      offers,
		notifier:    notifier,
		logger:      logger,
	}
}

// ListPendingEnterprises lists enterprises waiting for an admin decision
func (s *PartnershipService) ListPendingEnterprises(ctx context.Context) ([]*models.Enterprise, error) {
	return s.enterprises.ListEnterprisesByState(ctx, models.EnterprisePending)
}

// ListPartneredEnterprises lists enterprises currently in partnership
func (s *PartnershipService) ListPartneredEnterprises(ctx context.Context) ([]*models.Enterprise, error) {
	return s.enterprises.ListPartneredEnterprises(ctx)
}

// DecidePartnership records the admin decision on an enterprise. Approval
// brings the enterprise into the partnership; rejection only marks the state
// and leaves the partnership flag alone.
func (s *PartnershipService) DecidePartnership(ctx context.Context, enterpriseID int64, approved bool) error {
	enterprise, err := s.enterprises.GetEnterpriseByUserID(ctx, enterpriseID)
	if err != nil {
		return err
	}

	if approved {
		err = s.enterprises.SetPartnershipState(ctx, enterpriseID, models.EnterpriseApproved, true)
	} else {
		err = s.enterprises.SetPartnershipState(ctx, enterpriseID, models.EnterpriseRejected, enterprise.InPartnership)
	}
	if err != nil {
		return err
	}

	msg := "Your partnership request has been rejected."
	if approved {
		msg = "Your partnership request has been approved. You can now post internship offers."
	}
	s.notifier.Notify(ctx, enterpriseID, models.RoleEnterprise, "", msg)

	s.logger.Info().
		Int64("enterpriseID", enterpriseID).
		Bool("approved", approved).
		Msg("Partnership decision recorded")

	return nil
}

// GetEnterpriseInfo loads an enterprise profile with its offers and logo flag
func (s *PartnershipService) GetEnterpriseInfo(ctx context.Context, enterpriseID int64) (dto.EnterpriseResponse, error) {
	enterprise, err := s.enterprises.GetEnterpriseByUserID(ctx, enterpriseID)
	if err != nil {
		return dto.EnterpriseResponse{}, err
	}

	hasLogo, err := s.logos.HasLogo(ctx, enterpriseID)
	if err != nil {
		return dto.EnterpriseResponse{}, err
	}

	offers, err := s.offers.ListOffersByEnterprise(ctx, enterpriseID)
	if err != nil {
		return dto.EnterpriseResponse{}, err
	}

	return dto.FromEnterprise(enterprise, hasLogo, offers), nil
}

// UpdateContact replaces the contact details of an enterprise
func (s *PartnershipService) UpdateContact(ctx context.Context, enterpriseID int64, contact string) error {
	if contact == "" {
		return apperrors.NewBadRequestError("contact must not be empty")
	}
	return s.enterprises.UpdateContact(ctx, enterpriseID, contact)
}

// UpdateLocation replaces the location of an enterprise
func (s *PartnershipService) UpdateLocation(ctx context.Context, enterpriseID int64, location string) error {
	if location == "" {
		return apperrors.NewBadRequestError("location must not be empty")
	}
	return s.enterprises.UpdateLocation(ctx, enterpriseID, location)
}

// UpdateLogo stores or replaces the logo of an enterprise
func (s *PartnershipService) UpdateLogo(ctx context.Context, enterpriseID int64, data []byte, contentType string) error {
	if len(data) == 0 {
		return apperrors.NewBadRequestError("logo file must not be empty")
	}

	if _, err := s.enterprises.GetEnterpriseByUserID(ctx, enterpriseID); err != nil {
		return err
	}

	return s.logos.UpsertLogo(ctx, enterpriseID, data, contentType)
}

// GetLogo loads the logo of an enterprise
func (s *PartnershipService) GetLogo(ctx context.Context, enterpriseID int64) (*models.Logo, error) {
	return s.logos.GetLogo(ctx, enterpriseID)
}
