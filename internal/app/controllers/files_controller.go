package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/app/services"
	"github.com/internlink/backend/internal/middleware"
)

const pdfContentType = "application/pdf"

// FilesController serves the stored documents and images
type FilesController struct {
	applicationService *services.ApplicationService
	offerService       *services.OfferService
	partnershipService *services.PartnershipService
	logger             zerolog.Logger
}

// NewFilesController creates a new FilesController
func NewFilesController(
	applicationService *services.ApplicationService,
	offerService *services.OfferService,
	partnershipService *services.PartnershipService,
	logger zerolog.Logger,
) *FilesController {
	return &FilesController{
		applicationService: applicationService,
		offerService:       offerService,
		partnershipService: partnershipService,
		logger:             logger,
	}
}

// DownloadCV streams the CV attached to an application
// @Summary Download an application CV
// @Tags files
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {file} binary
// @Router /downloadFiles/application/{id}/cv [get]
func (c *FilesController) DownloadCV(ctx *gin.Context) {
	applicationID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	content, err := c.applicationService.GetApplicationCV(ctx.Request.Context(), applicationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	serveAttachment(ctx, fmt.Sprintf("cv_%d.pdf", applicationID), pdfContentType, content)
}

// DownloadCoverLetter streams the cover letter attached to an application
// @Summary Download an application cover letter
// @Tags files
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {file} binary
// @Router /downloadFiles/application/{id}/coverLetter [get]
func (c *FilesController) DownloadCoverLetter(ctx *gin.Context) {
	applicationID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	content, err := c.applicationService.GetApplicationCoverLetter(ctx.Request.Context(), applicationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	serveAttachment(ctx, fmt.Sprintf("cover_letter_%d.pdf", applicationID), pdfContentType, content)
}

// DownloadConvention streams the convention PDF of an offer
// @Summary Download an offer convention
// @Tags files
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Offer ID"
// @Success 200 {file} binary
// @Router /downloadFiles/offer/{id}/convention [get]
func (c *FilesController) DownloadConvention(ctx *gin.Context) {
	offerID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	content, err := c.offerService.GetConventionPDF(ctx.Request.Context(), offerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	serveAttachment(ctx, fmt.Sprintf("convention_%d.pdf", offerID), pdfContentType, content)
}

// DownloadLogo streams an enterprise logo
// @Summary Download an enterprise logo
// @Tags files
// @Produce image/*
// @Security BearerAuth
// @Param id path int true "Enterprise ID"
// @Success 200 {file} binary
// @Router /downloadFiles/enterprise/{id}/logo [get]
func (c *FilesController) DownloadLogo(ctx *gin.Context) {
	enterpriseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	logo, err := c.partnershipService.GetLogo(ctx.Request.Context(), enterpriseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	contentType := logo.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.Data(http.StatusOK, contentType, logo.Data)
}

// pathID parses an int64 path parameter, writing a 400 response on failure.
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func serveAttachment(ctx *gin.Context, fileName, contentType string, content []byte) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Data(http.StatusOK, contentType, content)
}
