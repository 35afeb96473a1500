package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrEmailNotVerified   = errors.New("email not verified")
)

// Offer and convention errors
var (
	ErrOfferNotFound        = errors.New("offer not found")
	ErrOfferAlreadyReviewed = errors.New("offer already processed")
	ErrConventionNotFound   = errors.New("convention not found")
)

// Application errors
var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrAlreadyOnInternship  = errors.New("student is already on internship")
	ErrDuplicateApplication = errors.New("student already applied for this offer")
)

// Enterprise errors
var (
	ErrEnterpriseNotFound = errors.New("enterprise not found")
	ErrLogoNotFound       = errors.New("logo not found")
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found or not owned by this user")
)

// Email verification errors
var (
	ErrVerificationTokenNotFound = errors.New("verification code not found")
	ErrVerificationTokenUsed     = errors.New("this code has already been used")
	ErrVerificationTokenExpired  = errors.New("verification code expired")
	ErrVerificationCodeMismatch  = errors.New("incorrect verification code")
	ErrEmailAlreadyVerified      = errors.New("email already verified")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
