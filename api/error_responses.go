package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	internalErrors "github.com/sketchy-app/sketchy/internal/errors"
	"github.com/sketchy-app/sketchy/internal/logger"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeUnknownRule      ErrorCode = "UNKNOWN_RULE"
	ErrorCodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	ErrorCodeSketchNotFound   ErrorCode = "SKETCH_NOT_FOUND"

	// Server Error Codes (5xx)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrorCodeRenderFailed  ErrorCode = "RENDER_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response and aborts the handler chain
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.AbortWithStatusJSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendUnknownRuleError sends the not found response for an unsupported search rule
func SendUnknownRuleError(c *gin.Context, rule string) {
	SendError(c, http.StatusNotFound, ErrorCodeUnknownRule,
		"Search rule '"+rule+"' not found")
}

// SendUserNotFoundError sends a standardized user not found error
func SendUserNotFoundError(c *gin.Context, userID string) {
	SendError(c, http.StatusNotFound, ErrorCodeUserNotFound,
		"User '"+userID+"' not found")
}

// SendSketchNotFoundError sends a standardized sketch not found error
func SendSketchNotFoundError(c *gin.Context, sketchID string) {
	SendError(c, http.StatusNotFound, ErrorCodeSketchNotFound,
		"Sketch '"+sketchID+"' not found")
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	logger.FromContext(c.Request.Context()).Error("request failed",
		zap.String("operation", operation), zap.Error(err))
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendRenderError sends a standardized template rendering error
func SendRenderError(c *gin.Context, template string, err error) {
	logger.FromContext(c.Request.Context()).Error("render failed",
		zap.String("template", template), zap.Error(err))
	SendError(c, http.StatusInternalServerError, ErrorCodeRenderFailed,
		"Failed to render '"+template+"': "+err.Error())
}

// sendStoreError maps persistence errors to API responses
func sendStoreError(c *gin.Context, operation string, err error) {
	var userErr *internalErrors.UserNotFoundError
	var sketchErr *internalErrors.SketchNotFoundError
	var validationErr *internalErrors.ValidationError

	switch {
	case errors.As(err, &userErr):
		SendUserNotFoundError(c, strconv.FormatInt(userErr.UserID, 10))
	case errors.As(err, &sketchErr):
		SendSketchNotFoundError(c, strconv.FormatInt(sketchErr.SketchID, 10))
	case errors.Is(err, internalErrors.ErrUserNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeUserNotFound, err.Error())
	case errors.Is(err, internalErrors.ErrSketchNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeSketchNotFound, err.Error())
	case errors.As(err, &validationErr):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed",
			ErrorDetail{Field: validationErr.Field, Message: validationErr.Message, Code: "VALIDATION_ERROR"})
	default:
		SendInternalError(c, operation, err)
	}
}
