package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/app/services"
	"github.com/internlink/backend/internal/middleware"
)

// ProfileController handles the account endpoints shared by every role
type ProfileController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(userService *services.UserService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		userService: userService,
		logger:      logger,
	}
}

// GetCurrentUser returns the authenticated user's account
// @Summary Get current user
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Router /updateProfile/getCurrentUser [get]
func (c *ProfileController) GetCurrentUser(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	user, err := c.userService.GetCurrentUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromUser(user)})
}

// GetUserEmail returns the authenticated user's email address
// @Summary Get current email
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /updateProfile/getUserEmail [get]
func (c *ProfileController) GetUserEmail(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"email": ctx.GetString("email")}})
}

// UpdatePassword changes the authenticated user's password
// @Summary Update password
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PasswordRequest true "New password"
// @Success 200 {object} dto.APIResponse
// @Router /updateProfile/updatePassword [patch]
func (c *ProfileController) UpdatePassword(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	var req dto.PasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.userService.UpdatePassword(ctx.Request.Context(), userID, req.Password); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Msg("Password updated")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Password updated successfully"}})
}

// VerifyPassword checks a password against the stored hash
// @Summary Verify password
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PasswordRequest true "Password to check"
// @Success 200 {object} dto.APIResponse
// @Router /updateProfile/verifyPassword [post]
func (c *ProfileController) VerifyPassword(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	var req dto.PasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	valid, err := c.userService.VerifyPassword(ctx.Request.Context(), userID, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"valid": valid}})
}

// UpdateEmail changes the authenticated user's email address
// @Summary Update email
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EmailRequest true "New email"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 409 {object} dto.ErrorResponse "Email already in use"
// @Router /updateProfile/updateEmail [patch]
func (c *ProfileController) UpdateEmail(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	var req dto.EmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.UpdateEmail(ctx.Request.Context(), userID, req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Msg("Email updated")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromUser(user)})
}

// DeleteAccount removes the authenticated user's account and its data
// @Summary Delete account
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /updateProfile/deleteAccount [delete]
func (c *ProfileController) DeleteAccount(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	if err := c.userService.DeleteAccount(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Msg("Account deleted")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Account deleted"}})
}

// UploadProfilePhoto stores or replaces the authenticated user's photo
// @Summary Upload profile photo
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Profile photo"
// @Success 200 {object} dto.APIResponse
// @Router /profilePhoto [put]
func (c *ProfileController) UploadProfilePhoto(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Photo file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	data, err := readFormFile(ctx, "photo")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Failed to read photo").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := c.userService.UploadProfilePhoto(ctx.Request.Context(), userID, fileHeader.Filename, contentType, data); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Profile photo updated"}})
}

// GetProfilePhoto streams the authenticated user's photo
// @Summary Get profile photo
// @Tags profile
// @Produce image/*
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /profilePhoto [get]
func (c *ProfileController) GetProfilePhoto(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	photo, err := c.userService.GetProfilePhoto(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	contentType := photo.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.Data(http.StatusOK, contentType, photo.Data)
}

// DeleteProfilePhoto removes the authenticated user's photo
// @Summary Delete profile photo
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /profilePhoto [delete]
func (c *ProfileController) DeleteProfilePhoto(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	if err := c.userService.DeleteProfilePhoto(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Profile photo deleted"}})
}
