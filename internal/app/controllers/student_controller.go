package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/app/services"
	"github.com/internlink/backend/internal/middleware"
)

// StudentController handles the student-facing internship endpoints
type StudentController struct {
	offerService       *services.OfferService
	applicationService *services.ApplicationService
	userService        *services.UserService
	logger             zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(
	offerService *services.OfferService,
	applicationService *services.ApplicationService,
	userService *services.UserService,
	logger zerolog.Logger,
) *StudentController {
	return &StudentController{
		offerService:       offerService,
		applicationService: applicationService,
		userService:        userService,
		logger:             logger,
	}
}

// ListOpenOffers returns the offers the student can apply to
// @Summary List open offers
// @Description Lists approved offers with an approved convention matching the student's department
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.OfferResponse}
// @Router /student/offersByApprovedStatus [get]
func (c *StudentController) ListOpenOffers(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	offers, err := c.offerService.ListOpenOffers(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromOfferList(offers)})
}

// ListPendingApplications returns the student's pending and rejected applications
// @Summary List pending applications
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse}
// @Router /student/pendingApplicationsOfStudent [get]
func (c *StudentController) ListPendingApplications(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	apps, err := c.applicationService.ListPendingApplications(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses, err := c.applicationService.BuildApplicationResponses(ctx.Request.Context(), apps)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: responses})
}

// ListApprovedApplications returns the student's approved applications
// @Summary List approved applications
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse}
// @Router /student/applicationsApprovedOfStudent [get]
func (c *StudentController) ListApprovedApplications(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	apps, err := c.applicationService.ListApprovedApplications(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses, err := c.applicationService.BuildApplicationResponses(ctx.Request.Context(), apps)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: responses})
}

// SubmitApplication creates an application with optional CV and cover letter
// @Summary Apply to an offer
// @Tags student
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offer ID"
// @Param cv formData file false "CV (PDF)"
// @Param coverLetter formData file false "Cover letter (PDF)"
// @Success 201 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Already on internship or duplicate application"
// @Router /student/{id}/createApplication [post]
func (c *StudentController) SubmitApplication(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	offerID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offer ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	cv, err := readFormFile(ctx, "cv")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Failed to read CV").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	coverLetter, err := readFormFile(ctx, "coverLetter")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Failed to read cover letter").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	app, err := c.applicationService.SubmitApplication(ctx.Request.Context(), userID, offerID, cv, coverLetter)
	if err != nil {
		c.logger.Warn().Err(err).Int64("offerID", offerID).Int64("studentID", userID).Msg("Application submission failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("applicationID", app.ID).Int64("offerID", offerID).Msg("Application submitted")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Application submitted successfully"},
	})
}

// AcceptInternship records the student's answer to an approved application
// @Summary Accept or decline an approved application
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param applicationAccepted query bool true "Whether the student accepts the internship"
// @Success 200 {object} dto.APIResponse
// @Router /student/{id}/updateStudentStatus [put]
func (c *StudentController) AcceptInternship(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	applicationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	accepted, err := strconv.ParseBool(ctx.Query("applicationAccepted"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "applicationAccepted must be a boolean")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if _, err := c.applicationService.AcceptInternship(ctx.Request.Context(), userID, applicationID, accepted); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Internship declined"
	if accepted {
		message = "Internship accepted"
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: message}})
}

// DeleteApplication removes a rejected application
// @Summary Delete a rejected application
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Application is not rejected"
// @Router /student/{id} [delete]
func (c *StudentController) DeleteApplication(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	applicationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.applicationService.DeleteRejectedApplication(ctx.Request.Context(), userID, applicationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Application deleted"}})
}

// UpdateLanguages replaces the student's language list
// @Summary Update languages
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LanguagesRequest true "Languages"
// @Success 200 {object} dto.APIResponse
// @Router /student/updateLanguages [patch]
func (c *StudentController) UpdateLanguages(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	var req dto.LanguagesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.userService.UpdateStudentLanguages(ctx.Request.Context(), userID, req.Languages); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Languages updated"}})
}

// UpdateGithubLink updates the student's GitHub profile link
// @Summary Update GitHub link
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GithubLinkRequest true "GitHub link"
// @Success 200 {object} dto.APIResponse
// @Router /student/updateGithubLink [patch]
func (c *StudentController) UpdateGithubLink(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	var req dto.GithubLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.userService.UpdateStudentGithubLink(ctx.Request.Context(), userID, req.GithubLink); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "GitHub link updated"}})
}

// UpdateLinkedinLink updates the student's LinkedIn profile link
// @Summary Update LinkedIn link
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LinkedinLinkRequest true "LinkedIn link"
// @Success 200 {object} dto.APIResponse
// @Router /student/updateLinkedinLink [patch]
func (c *StudentController) UpdateLinkedinLink(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	var req dto.LinkedinLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.userService.UpdateStudentLinkedinLink(ctx.Request.Context(), userID, req.LinkedinLink); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "LinkedIn link updated"}})
}

// GetInternshipStatus reports whether the student is currently on internship
// @Summary Get internship status
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /student/status [get]
func (c *StudentController) GetInternshipStatus(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	student, err := c.userService.GetStudentProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"onInternship": student.OnInternship}})
}

// GetProfile returns the student's profile
// @Summary Get student profile
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Router /student/profile [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	student, err := c.userService.GetStudentProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromStudent(student)})
}

// readFormFile loads an optional multipart file, returning nil when absent.
func readFormFile(ctx *gin.Context, field string) ([]byte, error) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
