package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/hulukipedia/gateway/internal/logger"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation_error"
	ErrorTypeCapability    ErrorType = "capability_error"
	ErrorTypeNotFound      ErrorType = "not_found_error"
	ErrorTypeInternal      ErrorType = "internal_error"
	ErrorTypeUpstream      ErrorType = "upstream_error"
	ErrorTypeConfiguration ErrorType = "configuration_error"
)

// APIError represents a structured API error
type APIError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    string    `json:"code,omitempty"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// ErrorResponse is the JSON error envelope. Detail mirrors Error.Message for
// clients that only read the top-level field.
type ErrorResponse struct {
	Error  APIError `json:"error"`
	Detail string   `json:"detail"`
}

// NewAPIError creates a new APIError
func NewAPIError(errorType ErrorType, message string) *APIError {
	return &APIError{
		Type:    errorType,
		Message: message,
	}
}

// NewAPIErrorWithCode creates a new APIError with a code
func NewAPIErrorWithCode(errorType ErrorType, message, code string) *APIError {
	return &APIError{
		Type:    errorType,
		Message: message,
		Code:    code,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(errorType ErrorType, message, details string) *APIError {
	return &APIError{
		Type:    errorType,
		Message: message,
		Details: details,
	}
}

// HandleError writes a standardized error response to the HTTP response writer
func HandleError(w http.ResponseWriter, err error, statusCode int) {
	HandleErrorCtx(context.Background(), w, err, statusCode)
}

// HandleErrorCtx is HandleError with request-scoped logging.
func HandleErrorCtx(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	var apiError *APIError
	if !stderrors.As(err, &apiError) {
		apiError = inferErrorType(err, statusCode)
	}

	response := ErrorResponse{Error: *apiError, Detail: apiError.Message}

	ctx = logger.WithComponent(ctx, logger.ComponentNames.ErrorHandler)
	if jsonBytes, jsonErr := json.Marshal(response); jsonErr == nil {
		_, _ = w.Write(jsonBytes)
	} else {
		logger.Error(ctx, "Error marshaling error response", jsonErr)
		_, _ = w.Write([]byte(`{"error":{"type":"internal_error","message":"Internal server error"},"detail":"Internal server error"}`))
	}

	logArgs := []any{
		"status_code", statusCode,
		"error_type", string(apiError.Type),
		"message", apiError.Message,
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error(ctx, "API error", err, logArgs...)
	} else {
		logger.Warn(ctx, "API error", logArgs...)
	}
}

// inferErrorType infers the error type from the status code
func inferErrorType(err error, statusCode int) *APIError {
	message := err.Error()

	switch statusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return NewAPIError(ErrorTypeValidation, message)
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return NewAPIError(ErrorTypeNotFound, message)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return NewAPIError(ErrorTypeUpstream, message)
	default:
		return NewAPIError(ErrorTypeInternal, message)
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *APIError {
	return NewAPIError(ErrorTypeValidation, message)
}

// NewCapabilityError reports an operation the resolved alias cannot serve
func NewCapabilityError(message string) *APIError {
	return NewAPIError(ErrorTypeCapability, message)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string) *APIError {
	return NewAPIError(ErrorTypeNotFound, message)
}

// NewInternalError creates an internal error
func NewInternalError(message string) *APIError {
	return NewAPIError(ErrorTypeInternal, message)
}

// NewUpstreamError reports a malformed or empty upstream payload
func NewUpstreamError(message string) *APIError {
	return NewAPIError(ErrorTypeUpstream, message)
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(message string) *APIError {
	return NewAPIError(ErrorTypeConfiguration, message)
}
