// Package api provides validation utilities for API request handling.
package api

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

const (
	maxSketchNameLength  = 100
	maxSketchPlaceLength = 200
	maxUsernameLength    = 50
	maxDescriptionLength = 500
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateSketchForm validates the fields of a new sketch
func ValidateSketchForm(name, place string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if strings.TrimSpace(name) == "" {
		result.AddError("name", "Sketch name is required")
	} else if utf8.RuneCountInString(name) > maxSketchNameLength {
		result.AddError("name", "Sketch name is too long (maximum 100)")
	}

	if strings.TrimSpace(place) == "" {
		result.AddError("place", "Place is required")
	} else if utf8.RuneCountInString(place) > maxSketchPlaceLength {
		result.AddError("place", "Place is too long (maximum 200)")
	}

	return result
}

// ValidateUsername returns an error message for an invalid display name, or "".
func ValidateUsername(username string) string {
	if strings.TrimSpace(username) == "" {
		return "Display name is not specified"
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return "Display name is too long (maximum 50)"
	}
	return ""
}

// ValidateDescription returns an error message for an invalid profile description, or "".
func ValidateDescription(description string) string {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return "Description is too long (maximum 500)"
	}
	return ""
}

// intQuery reads an integer query parameter. Missing or malformed values yield 0.
func intQuery(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

// ParseID parses a positive numeric identifier.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// SafeRedirectTarget returns target when it is a local absolute path, fallback otherwise.
func SafeRedirectTarget(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}
