package cli

import (
	"fmt"

	"habit-bot/internal/errors"
	"habit-bot/internal/logging"
	"habit-bot/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	eh.log(operation, err)

	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		userMessage := errors.GetUserMessage(err)
		return fmt.Errorf("failed to %s: %s", operation, userMessage)
	}

	// Fallback for unknown errors
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("%s", validationErr.GetUserFriendlyMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}

	return err
}

// log records system failures; user mistakes are only reported back
func (eh *ErrorHandler) log(operation string, err error) {
	switch {
	case eh.IsValidationError(err), eh.IsNotFoundError(err):
		return
	case eh.IsStaleError(err):
		logging.Debugf("%s: %v\n", operation, err)
		return
	case eh.IsTransportError(err):
		appErr, _ := errors.AsAppError(err)
		cell, _ := appErr.GetContext("cell")
		logging.Errorf("%s [%s] cell %v: %v", operation, eh.GetErrorCode(err), cell, err)
		return
	}
	if _, ok := errors.AsAppError(err); ok && !errors.ShouldLogError(err) {
		return
	}
	logging.Errorf("%s [%s]: %v", operation, eh.GetErrorCode(err), err)
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsStaleError checks if an error refers to a list that is no longer current
func (eh *ErrorHandler) IsStaleError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeStaleIndex)
}

// IsTransportError checks if an error came from the spreadsheet transport
func (eh *ErrorHandler) IsTransportError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeTransport)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
