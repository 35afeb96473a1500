package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/app/services"
	"github.com/internlink/backend/internal/middleware"
)

// EnterpriseController handles the enterprise-facing endpoints
type EnterpriseController struct {
	offerService       *services.OfferService
	applicationService *services.ApplicationService
	partnershipService *services.PartnershipService
	logger             zerolog.Logger
}

// NewEnterpriseController creates a new EnterpriseController
func NewEnterpriseController(
	offerService *services.OfferService,
	applicationService *services.ApplicationService,
	partnershipService *services.PartnershipService,
	logger zerolog.Logger,
) *EnterpriseController {
	return &EnterpriseController{
		offerService:       offerService,
		applicationService: applicationService,
		partnershipService: partnershipService,
		logger:             logger,
	}
}

// CreateOffer registers a new internship offer
// @Summary Create an offer
// @Tags enterprise
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OfferRequest true "Offer details"
// @Success 201 {object} dto.APIResponse{data=dto.MiniOfferResponse}
// @Router /enterprise/createOffer [post]
func (c *EnterpriseController) CreateOffer(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	var req dto.OfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	offer, err := c.offerService.CreateOffer(ctx.Request.Context(), userID, req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("enterpriseID", userID).Msg("Offer creation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("offerID", offer.ID).Str("title", offer.Title).Msg("Offer created")

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.FromMiniOffer(offer)})
}

// AttachConvention uploads the convention PDF for an offer
// @Summary Attach a convention to an offer
// @Tags enterprise
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offer ID"
// @Param pdfConvention formData file true "Convention document (PDF)"
// @Success 200 {object} dto.APIResponse
// @Router /enterprise/{id}/convention [post]
func (c *EnterpriseController) AttachConvention(ctx *gin.Context) {
	offerID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offer ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	pdf, err := readFormFile(ctx, "pdfConvention")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Failed to read convention file").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if _, err := c.offerService.AttachConvention(ctx.Request.Context(), offerID, pdf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("offerID", offerID).Msg("Convention attached")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Convention uploaded successfully"}})
}

// ListOffers returns every offer posted by the enterprise
// @Summary List own offers
// @Tags enterprise
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.OfferResponse}
// @Router /enterprise/listOfOffers [get]
func (c *EnterpriseController) ListOffers(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	offers, err := c.offerService.ListEnterpriseOffers(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromOfferList(offers)})
}

// ListApplications returns the applications received on the enterprise offers
// @Summary List received applications
// @Tags enterprise
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse}
// @Router /enterprise/Applications [get]
func (c *EnterpriseController) ListApplications(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	responses, err := c.applicationService.ListEnterpriseApplications(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: responses})
}

// DecideApplication approves or rejects a received application
// @Summary Decide on an application
// @Tags enterprise
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param approved query bool true "Approve or reject"
// @Success 200 {object} dto.APIResponse
// @Router /enterprise/application/{id}/validate [put]
func (c *EnterpriseController) DecideApplication(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	applicationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	approved, err := strconv.ParseBool(ctx.Query("approved"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "approved must be a boolean")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	state, err := c.applicationService.DecideApplication(ctx.Request.Context(), userID, applicationID, approved)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("applicationID", applicationID).Str("state", state).Msg("Application decided")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Application " + state}})
}

// GetInfo returns the enterprise profile with its offers
// @Summary Get enterprise profile
// @Tags enterprise
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.EnterpriseResponse}
// @Router /enterprise/info [get]
func (c *EnterpriseController) GetInfo(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	info, err := c.partnershipService.GetEnterpriseInfo(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: info})
}

// UpdateContact updates the enterprise contact details
// @Summary Update contact
// @Tags enterprise
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateEnterpriseProfileRequest true "New contact"
// @Success 200 {object} dto.APIResponse
// @Router /enterprise/updateContact [patch]
func (c *EnterpriseController) UpdateContact(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	var req dto.UpdateEnterpriseProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.partnershipService.UpdateContact(ctx.Request.Context(), userID, req.Contact); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Contact updated"}})
}

// UpdateLocation updates the enterprise location
// @Summary Update location
// @Tags enterprise
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateEnterpriseProfileRequest true "New location"
// @Success 200 {object} dto.APIResponse
// @Router /enterprise/updateLocation [patch]
func (c *EnterpriseController) UpdateLocation(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	var req dto.UpdateEnterpriseProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.partnershipService.UpdateLocation(ctx.Request.Context(), userID, req.Location); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Location updated"}})
}

// UpdateLogo replaces the enterprise logo
// @Summary Update logo
// @Tags enterprise
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param logo formData file true "Logo image"
// @Success 200 {object} dto.APIResponse
// @Router /enterprise/updateLogo [put]
func (c *EnterpriseController) UpdateLogo(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	fileHeader, err := ctx.FormFile("logo")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Logo file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	data, err := readFormFile(ctx, "logo")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Failed to read logo").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := c.partnershipService.UpdateLogo(ctx.Request.Context(), userID, data, contentType); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Logo updated"}})
}
