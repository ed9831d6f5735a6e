package types

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode is a typed string for categorizing application errors.
type ErrorCode string

// Complete error code constants.
// All handlers MUST use these constants instead of hardcoded strings.
const (
	// Validation (400): user-correctable, reported verbatim.
	ErrCodeValidationInvalidJSON         ErrorCode = "validation_invalid_json"
	ErrCodeValidationMissingField        ErrorCode = "validation_missing_required_field"
	ErrCodeValidationInvalidTemplate     ErrorCode = "validation_invalid_template_code"
	ErrCodeValidationTemplateMismatch    ErrorCode = "validation_template_classification_mismatch"
	ErrCodeValidationOverrideReason      ErrorCode = "validation_override_reason_required"
	ErrCodeValidationOverrideConsistency ErrorCode = "validation_override_state_inconsistent"
	ErrCodeValidationInvalidSize         ErrorCode = "validation_invalid_size"
	ErrCodeValidationInvalidOrientation  ErrorCode = "validation_invalid_orientation"
	ErrCodeValidationInvalidLanguage     ErrorCode = "validation_invalid_language"

	// Not Found (404)
	ErrCodeNotFoundLocation ErrorCode = "not_found_location"
	ErrCodeNotFoundPoster   ErrorCode = "not_found_poster"

	// Configuration/Data (500): non-retryable without a content or
	// deployment fix.
	ErrCodeConfigUnknownClassification ErrorCode = "config_unknown_classification"
	ErrCodeConfigTemplateNotFound      ErrorCode = "config_template_not_found"

	// Upstream (502/504): beaches.ie integration failures.
	ErrCodeUpstreamTimeout         ErrorCode = "upstream_timeout"
	ErrCodeUpstreamUnavailable     ErrorCode = "upstream_unavailable"
	ErrCodeUpstreamInvalidResponse ErrorCode = "upstream_invalid_response"
	ErrCodeUpstreamNotFound        ErrorCode = "upstream_not_found"
	ErrCodeUpstreamRateLimited     ErrorCode = "upstream_rate_limited"

	// Internal (500)
	ErrCodeInternalDB           ErrorCode = "internal_database_error"
	ErrCodeInternalRenderFailed ErrorCode = "internal_render_failed"
	ErrCodeInternalQRFailed     ErrorCode = "internal_qr_generation_failed"
	ErrCodeInternalUnexpected   ErrorCode = "internal_unexpected_error"
)

// HTTPStatus maps an ErrorCode to its corresponding HTTP status code.
// Used by the API layer to translate AppErrors into HTTP responses.
// Returns 500 for unrecognized error codes as a safe default.
func (c ErrorCode) HTTPStatus() int {
	s := string(c)
	switch {
	case strings.HasPrefix(s, "validation_"):
		return http.StatusBadRequest // 400
	case strings.HasPrefix(s, "not_found_"):
		return http.StatusNotFound // 404
	case s == string(ErrCodeUpstreamTimeout):
		return http.StatusGatewayTimeout // 504
	case s == string(ErrCodeUpstreamRateLimited):
		return http.StatusTooManyRequests // 429
	case strings.HasPrefix(s, "upstream_"):
		return http.StatusBadGateway // 502
	case strings.HasPrefix(s, "config_"), strings.HasPrefix(s, "internal_"):
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// AppError is the standard application error type used throughout the service.
// All domain and handler errors should be expressed as AppError to enable
// consistent error formatting, HTTP status mapping, and error chain support.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code corresponding to this error's code.
func (e *AppError) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a copy of the error with the provided details merged in.
// This is useful for adding context without mutating the original error.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     e.Err,
		Details: merged,
	}
}

// NewAppError creates a new AppError with the given code, message, and optional
// underlying error. This is the standard constructor for domain errors.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewAppErrorWithDetails creates a new AppError with the given code, message,
// underlying error, and structured details.
func NewAppErrorWithDetails(code ErrorCode, message string, err error, details map[string]any) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: details,
	}
}
