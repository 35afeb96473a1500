package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/app/services"
	"github.com/internlink/backend/internal/middleware"
	"github.com/internlink/backend/internal/pkg/helpers"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminController handles partnership administration and reporting
type AdminController struct {
	partnershipService *services.PartnershipService
	reportService      *services.ReportService
	userService        *services.UserService
	logger             zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(
	partnershipService *services.PartnershipService,
	reportService *services.ReportService,
	userService *services.UserService,
	logger zerolog.Logger,
) *AdminController {
	return &AdminController{
		partnershipService: partnershipService,
		reportService:      reportService,
		userService:        userService,
		logger:             logger,
	}
}

// ListPendingEnterprises returns the enterprises awaiting a partnership decision
// @Summary List pending enterprises
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnterpriseResponse}
// @Router /admin/enterprises/pending [get]
func (c *AdminController) ListPendingEnterprises(ctx *gin.Context) {
	enterprises, err := c.partnershipService.ListPendingEnterprises(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromEnterpriseList(enterprises)})
}

// ListPartneredEnterprises returns the enterprises currently in partnership
// @Summary List partnered enterprises
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnterpriseResponse}
// @Router /admin/enterprises/partnered [get]
func (c *AdminController) ListPartneredEnterprises(ctx *gin.Context) {
	enterprises, err := c.partnershipService.ListPartneredEnterprises(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromEnterpriseList(enterprises)})
}

// DecidePartnership approves or rejects an enterprise partnership request
// @Summary Decide on a partnership
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enterprise ID"
// @Param request body dto.PartnershipDecisionRequest true "Decision"
// @Success 200 {object} dto.APIResponse
// @Router /admin/enterprises/{id}/decide [put]
func (c *AdminController) DecidePartnership(ctx *gin.Context) {
	enterpriseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enterprise ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.PartnershipDecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.partnershipService.DecidePartnership(ctx.Request.Context(), enterpriseID, req.Approved); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Partnership rejected"
	if req.Approved {
		message = "Partnership approved"
	}

	c.logger.Info().Int64("enterpriseID", enterpriseID).Bool("approved", req.Approved).Msg("Partnership decided")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: message}})
}

// ListStudents returns a paginated view of the registered students
// @Summary List students
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /admin/students [get]
func (c *AdminController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	students, pagination, err := c.userService.ListStudents(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{
		Items:      dto.FromStudentList(students),
		Pagination: pagination,
	}})
}

// ListTeachers returns a paginated view of the registered teachers
// @Summary List teachers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /admin/teachers [get]
func (c *AdminController) ListTeachers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	teachers, pagination, err := c.userService.ListTeachers(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{
		Items:      dto.FromTeacherList(teachers),
		Pagination: pagination,
	}})
}

// ExportInternships streams the current internships as an Excel workbook
// @Summary Export internships
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /admin/internships/export [get]
func (c *AdminController) ExportInternships(ctx *gin.Context) {
	content, err := c.reportService.ExportInternships(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Internship export failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	fileName := fmt.Sprintf("internships_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Data(http.StatusOK, xlsxContentType, content)
}
