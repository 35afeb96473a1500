// Package controllers handles HTTP request handling
package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/app/services"
	"github.com/internlink/backend/internal/middleware"
)

// RegistrationController handles the public sign-up endpoints
type RegistrationController struct {
	registrationService *services.RegistrationService
	verificationService *services.VerificationService
	logger              zerolog.Logger
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(
	registrationService *services.RegistrationService,
	verificationService *services.VerificationService,
	logger zerolog.Logger,
) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
		verificationService: verificationService,
		logger:              logger,
	}
}

// RegisterStudent handles student sign-up
// @Summary Register a new student
// @Description Creates a student account and sends a verification code by email
// @Tags registration
// @Accept json
// @Produce json
// @Param request body dto.StudentRegisterRequest true "Student registration information"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /registration/student [post]
func (c *RegistrationController) RegisterStudent(ctx *gin.Context) {
	var req dto.StudentRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student registration payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	id, err := c.registrationService.RegisterStudent(ctx.Request.Context(), req)
	if err != nil {
		c.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to register student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", id).Str("email", req.Email).Msg("Student registered")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Registration successful, a verification code has been sent to your email"},
	})
}

// RegisterTeacher handles teacher sign-up
// @Summary Register a new teacher
// @Description Creates a teacher account and sends a verification code by email
// @Tags registration
// @Accept json
// @Produce json
// @Param request body dto.TeacherRegisterRequest true "Teacher registration information"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /registration/teacher [post]
func (c *RegistrationController) RegisterTeacher(ctx *gin.Context) {
	var req dto.TeacherRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid teacher registration payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	id, err := c.registrationService.RegisterTeacher(ctx.Request.Context(), req)
	if err != nil {
		c.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to register teacher")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", id).Str("email", req.Email).Msg("Teacher registered")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Registration successful, a verification code has been sent to your email"},
	})
}

// RegisterEnterprise handles enterprise sign-up with an optional logo upload
// @Summary Register a new enterprise
// @Description Creates an enterprise account from a multipart form. The logo file is optional.
// @Tags registration
// @Accept multipart/form-data
// @Produce json
// @Param logo formData file false "Company logo"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /registration/enterprise [post]
func (c *RegistrationController) RegisterEnterprise(ctx *gin.Context) {
	var req dto.EnterpriseRegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid enterprise registration payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var logoData []byte
	var logoContentType string
	if fileHeader, err := ctx.FormFile("logo"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		defer file.Close()

		logoData, err = io.ReadAll(file)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		logoContentType = fileHeader.Header.Get("Content-Type")
	}

	id, err := c.registrationService.RegisterEnterprise(ctx.Request.Context(), req, logoData, logoContentType)
	if err != nil {
		c.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to register enterprise")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", id).Str("email", req.Email).Msg("Enterprise registered")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Registration successful, a verification code has been sent to your email"},
	})
}

// ResendCode sends a fresh verification code to an unverified account
// @Summary Resend the verification code
// @Tags registration
// @Produce json
// @Param email query string true "Account email"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /registration/resendCode [post]
func (c *RegistrationController) ResendCode(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "email query parameter is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.verificationService.ResendCode(ctx.Request.Context(), email); err != nil {
		c.logger.Warn().Err(err).Str("email", email).Msg("Failed to resend verification code")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "A new verification code has been sent to your email"},
	})
}

// VerifyEmail checks the verification code a user received
// @Summary Verify an email address
// @Description Validates the emailed code and activates the account
// @Tags registration
// @Accept json
// @Produce json
// @Param request body dto.VerifyCodeRequest true "Email and verification code"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Incorrect or expired code"
// @Failure 404 {object} dto.ErrorResponse "User or code not found"
// @Router /registration/verify [post]
func (c *RegistrationController) VerifyEmail(ctx *gin.Context) {
	var req dto.VerifyCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.verificationService.VerifyCode(ctx.Request.Context(), req.Email, req.Code)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Email verification failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", user.ID).Msg("Email verified")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Email verified successfully"},
	})
}
