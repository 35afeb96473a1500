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

// TeacherController handles the teacher-facing review endpoints
type TeacherController struct {
	offerService       *services.OfferService
	reportService      *services.ReportService
	userService        *services.UserService
	partnershipService *services.PartnershipService
	logger             zerolog.Logger
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(
	offerService *services.OfferService,
	reportService *services.ReportService,
	userService *services.UserService,
	partnershipService *services.PartnershipService,
	logger zerolog.Logger,
) *TeacherController {
	return &TeacherController{
		offerService:       offerService,
		reportService:      reportService,
		userService:        userService,
		partnershipService: partnershipService,
		logger:             logger,
	}
}

// ListOffersToReview returns the pending offers matching the teacher's department
// @Summary List offers awaiting review
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.OfferResponse}
// @Router /teacher/offerToReview [get]
func (c *TeacherController) ListOffersToReview(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	offers, err := c.offerService.ListOffersToReview(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromOfferList(offers)})
}

// ListApprovedOffers returns the offers the teacher has validated
// @Summary List offers approved by the teacher
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.OfferResponse}
// @Router /teacher/offersApprovedByTeacher [get]
func (c *TeacherController) ListApprovedOffers(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	offers, err := c.offerService.ListOffersApprovedByTeacher(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromOfferList(offers)})
}

// ValidateOffer records the teacher's decision on an offer and its convention
// @Summary Validate an offer
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offer ID"
// @Param request body dto.OfferValidationRequest true "Decision"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Offer already reviewed"
// @Router /teacher/offers/{id}/validate [put]
func (c *TeacherController) ValidateOffer(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	offerID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offer ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.OfferValidationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	offerStatus, conventionState, err := c.offerService.ValidateOffer(ctx.Request.Context(), userID, offerID, req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("offerID", offerID).Msg("Offer validation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("offerID", offerID).
		Str("offerStatus", string(offerStatus)).
		Str("conventionState", string(conventionState)).
		Msg("Offer reviewed")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{
		"offerStatus":     offerStatus,
		"conventionState": conventionState,
	}})
}

// ListDepartmentStudents returns the students of the teacher's department
// @Summary List students of the teacher's department
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse}
// @Router /teacher/studentsOfDepartment [get]
func (c *TeacherController) ListDepartmentStudents(ctx *gin.Context) {
	department := ctx.GetString("userDepartment")

	students, err := c.userService.ListDepartmentStudents(ctx.Request.Context(), department)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromStudentList(students)})
}

// ListPartneredEnterprises returns the enterprises currently in partnership
// @Summary List partnered enterprises
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnterpriseResponse}
// @Router /teacher/partneredEnterprises [get]
func (c *TeacherController) ListPartneredEnterprises(ctx *gin.Context) {
	enterprises, err := c.partnershipService.ListPartneredEnterprises(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromEnterpriseList(enterprises)})
}

// GetDepartmentStats returns per-department internship counts
// @Summary Internship statistics by department
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.InternshipStatResponse}
// @Router /teacher/internshipsByDepartment [get]
func (c *TeacherController) GetDepartmentStats(ctx *gin.Context) {
	stats, err := c.reportService.GetInternshipStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: stats})
}
