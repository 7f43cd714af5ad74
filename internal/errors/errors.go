package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrUnknownRule is returned when a search rule is outside the supported set
	ErrUnknownRule = errors.New("unknown search rule")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrSketchNotFound is returned when a sketch is not found
	ErrSketchNotFound = errors.New("sketch not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrFollowSync is returned when a follow toggle does not match the stored state
	ErrFollowSync = errors.New("follow state out of sync")
)

// UnknownRuleError represents an unknown search rule with context
type UnknownRuleError struct {
	Rule string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("search rule '%s' is not supported", e.Rule)
}

func (e *UnknownRuleError) Is(target error) bool {
	return target == ErrUnknownRule
}

// NewUnknownRuleError creates a new UnknownRuleError
func NewUnknownRuleError(rule string) *UnknownRuleError {
	return &UnknownRuleError{Rule: rule}
}

// UserNotFoundError represents a user not found error with context
type UserNotFoundError struct {
	UserID int64
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user with ID '%d' not found", e.UserID)
}

func (e *UserNotFoundError) Is(target error) bool {
	return target == ErrUserNotFound
}

// NewUserNotFoundError creates a new UserNotFoundError
func NewUserNotFoundError(userID int64) *UserNotFoundError {
	return &UserNotFoundError{UserID: userID}
}

// SketchNotFoundError represents a sketch not found error with context
type SketchNotFoundError struct {
	SketchID int64
}

func (e *SketchNotFoundError) Error() string {
	return fmt.Sprintf("sketch with ID '%d' not found", e.SketchID)
}

func (e *SketchNotFoundError) Is(target error) bool {
	return target == ErrSketchNotFound
}

// NewSketchNotFoundError creates a new SketchNotFoundError
func NewSketchNotFoundError(sketchID int64) *SketchNotFoundError {
	return &SketchNotFoundError{SketchID: sketchID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
