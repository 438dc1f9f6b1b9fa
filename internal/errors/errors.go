package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Context: map[string]interface{}{
			"operation": operation,
			"timeout":   timeout,
		},
	}
}

// NewTransportError reports an unreachable or non-OK cell store
func NewTransportError(operation string, cell string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransport,
		Message: fmt.Sprintf("cell store %s failed for %s", operation, cell),
		Code:    "TRANSPORT_FAILURE",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
			"cell":      cell,
		},
	}
}

// NewStaleIndexError reports a toggle that no longer matches the loaded list
func NewStaleIndexError(list string, index int, size int) *AppError {
	return &AppError{
		Type:    ErrorTypeStaleIndex,
		Message: fmt.Sprintf("%s index %d does not match the loaded list of %d", list, index, size),
		Code:    "STALE_INDEX",
		Context: map[string]interface{}{
			"list":  list,
			"index": index,
			"size":  size,
		},
	}
}

// NewStaleItemError reports a keyed toggle for an item missing from today's list
func NewStaleItemError(list string, key string) *AppError {
	return &AppError{
		Type:    ErrorTypeStaleIndex,
		Message: fmt.Sprintf("%s item %s is not in today's list", list, key),
		Code:    "STALE_ITEM",
		Context: map[string]interface{}{
			"list": list,
			"key":  key,
		},
	}
}

// NewMalformedTimeError reports a habit time cell that cannot be parsed
func NewMalformedTimeError(cell string, value interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeMalformedTime,
		Message: fmt.Sprintf("unparseable habit time in %s", cell),
		Code:    "MALFORMED_TIME",
		Context: map[string]interface{}{
			"cell":  cell,
			"value": value,
		},
	}
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		case ErrorTypeTransport:
			return "The spreadsheet is unreachable right now. Please try again."
		case ErrorTypeStaleIndex:
			return "This list is out of date. Please reload it."
		case ErrorTypeMalformedTime:
			return appErr.Message
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeStaleIndex:
			return false // These are user errors, not system errors
		case ErrorTypeMalformedTime:
			return false // Bad sheet data only drops the habit from scheduling
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
