package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeBodyTooLarge       = "BODY_TOO_LARGE"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeCategoryNotFound   = "CATEGORY_NOT_FOUND"
	ErrCodeBrandNotFound      = "BRAND_NOT_FOUND"
	ErrCodeInvalidGrade       = "INVALID_GRADE"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUsernameTaken      = "USERNAME_TAKEN"
	ErrCodeInvalidPassword    = "INVALID_PASSWORD"
	ErrCodePasswordMismatch   = "PASSWORD_MISMATCH"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "product not found")
	ErrCategoryNotFound   = NewDomainError(ErrCodeCategoryNotFound, "category not found")
	ErrBrandNotFound      = NewDomainError(ErrCodeBrandNotFound, "brand not found")
	ErrInvalidGrade       = NewDomainError(ErrCodeInvalidGrade, "nutrition grade must be one of a, b, c, d, e")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "invalid username or password")
	ErrUsernameTaken      = NewDomainError(ErrCodeUsernameTaken, "a user with that username already exists")
	ErrPasswordTooShort   = NewDomainError(ErrCodeInvalidPassword, "password must contain at least 8 characters")
	ErrPasswordTooLong    = NewDomainError(ErrCodeInvalidPassword, "password must contain at most 72 bytes")
	ErrPasswordNumeric    = NewDomainError(ErrCodeInvalidPassword, "password cannot be entirely numeric")
	ErrPasswordUsername   = NewDomainError(ErrCodeInvalidPassword, "password is too similar to the username")
	ErrPasswordAttribute  = NewDomainError(ErrCodeInvalidPassword, "password is too similar to the email address")
	ErrPasswordCommon     = NewDomainError(ErrCodeInvalidPassword, "password is too common")
	ErrPasswordMismatch   = NewDomainError(ErrCodePasswordMismatch, "the two password fields didn't match")
	ErrUnauthorised       = NewDomainError(ErrCodeUnauthorised, "authentication required")
)

// NewMissingFieldError returns a domain error naming the missing field.
func NewMissingFieldError(field string) *DomainError {
	return NewDomainError(ErrCodeMissingField, field+" is required")
}
