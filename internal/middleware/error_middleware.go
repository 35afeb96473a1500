package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses. Every controller
// funnels its errors through here so the wire format stays uniform.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrOfferNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Offer not found")
	case errors.Is(err, apperrors.ErrConventionNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Convention not found")
	case errors.Is(err, apperrors.ErrApplicationNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Application not found")
	case errors.Is(err, apperrors.ErrEnterpriseNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Enterprise not found")
	case errors.Is(err, apperrors.ErrLogoNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Logo not found")
	case errors.Is(err, apperrors.ErrNotificationNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Notification not found")
	case errors.Is(err, apperrors.ErrVerificationTokenNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeVerificationNotFound, "Verification code not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeEmailAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrOfferAlreadyReviewed):
		respondError(c, http.StatusConflict, dto.ErrorCodeOfferAlreadyReviewed, "Offer already processed")
	case errors.Is(err, apperrors.ErrDuplicateApplication):
		respondError(c, http.StatusConflict, dto.ErrorCodeDuplicateApplication, "You already applied for this offer")
	case errors.Is(err, apperrors.ErrAlreadyOnInternship):
		respondError(c, http.StatusConflict, dto.ErrorCodeAlreadyOnInternship, "You are on internship and cannot apply anymore")
	case errors.Is(err, apperrors.ErrVerificationTokenUsed):
		respondError(c, http.StatusConflict, dto.ErrorCodeVerificationUsed, "This code has already been used")
	case errors.Is(err, apperrors.ErrEmailAlreadyVerified):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already verified")
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, errMessage(err, "Conflict"))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	case errors.Is(err, apperrors.ErrEmailNotVerified):
		respondError(c, http.StatusForbidden, dto.ErrorCodeEmailNotVerified, "Email not verified")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeUnauthorized, "Permission denied")

	case errors.Is(err, apperrors.ErrVerificationTokenExpired):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeVerificationExpired, "The code has expired. A new code has been sent to you")
	case errors.Is(err, apperrors.ErrVerificationCodeMismatch):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeVerificationMismatch, "Incorrect code")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, errMessage(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, errMessage(err, "Bad request"))

	default:
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// errMessage prefers the wrapped message a service attached over the generic
// fallback
func errMessage(err error, fallback string) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return fallback
}
