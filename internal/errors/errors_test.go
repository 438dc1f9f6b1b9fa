package errors

import (
	"errors"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("user id is required")
	err := NewValidationError("validation failed", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Message != "validation failed" {
		t.Errorf("NewValidationError message = %v, want %v", err.Message, "validation failed")
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "C43")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: C43" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "task not found: C43")
	}

	resource, ok := err.GetContext("resource")
	if !ok || resource != "task" {
		t.Errorf("NewNotFoundError should set resource context")
	}
	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "C43" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewDatabaseError("add subscriber", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "database operation failed: add subscriber" {
		t.Errorf("NewDatabaseError message = %v", err.Message)
	}
	if err.Code != "DATABASE_ERROR" {
		t.Errorf("NewDatabaseError code = %v, want %v", err.Code, "DATABASE_ERROR")
	}
	if err.Cause != cause {
		t.Errorf("NewDatabaseError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("callback", "toggle_x", "index is not a number")

	if err.Type != ErrorTypeInvalidInput {
		t.Errorf("NewInvalidInputError type = %v, want %v", err.Type, ErrorTypeInvalidInput)
	}
	if err.Message != "invalid input for callback: index is not a number" {
		t.Errorf("NewInvalidInputError message = %v", err.Message)
	}
	value, ok := err.GetContext("value")
	if !ok || value != "toggle_x" {
		t.Errorf("NewInvalidInputError should set value context")
	}
}

func TestNewTimeoutError(t *testing.T) {
	err := NewTimeoutError("cell store get D43", "5s")

	if err.Type != ErrorTypeTimeout {
		t.Errorf("NewTimeoutError type = %v, want %v", err.Type, ErrorTypeTimeout)
	}
	if err.Code != "TIMEOUT" {
		t.Errorf("NewTimeoutError code = %v, want %v", err.Code, "TIMEOUT")
	}
	timeout, ok := err.GetContext("timeout")
	if !ok || timeout != "5s" {
		t.Errorf("NewTimeoutError should set timeout context")
	}
}

func TestNewTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransportError("set", "C43", cause)

	if err.Type != ErrorTypeTransport {
		t.Errorf("NewTransportError type = %v, want %v", err.Type, ErrorTypeTransport)
	}
	if err.Message != "cell store set failed for C43" {
		t.Errorf("NewTransportError message = %v", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewTransportError should unwrap to its cause")
	}
	cell, ok := err.GetContext("cell")
	if !ok || cell != "C43" {
		t.Errorf("NewTransportError should set cell context")
	}
}

func TestNewStaleItemError(t *testing.T) {
	err := NewStaleItemError("tasks", "C43")

	if err.Type != ErrorTypeStaleIndex {
		t.Errorf("NewStaleItemError type = %v, want %v", err.Type, ErrorTypeStaleIndex)
	}
	if err.Code != "STALE_ITEM" {
		t.Errorf("NewStaleItemError code = %v", err.Code)
	}
	if err.Message != "tasks item C43 is not in today's list" {
		t.Errorf("NewStaleItemError message = %v", err.Message)
	}
}

func TestNewStaleIndexError(t *testing.T) {
	err := NewStaleIndexError("tasks", 7, 6)

	if err.Type != ErrorTypeStaleIndex {
		t.Errorf("NewStaleIndexError type = %v, want %v", err.Type, ErrorTypeStaleIndex)
	}
	if err.Message != "tasks index 7 does not match the loaded list of 6" {
		t.Errorf("NewStaleIndexError message = %v", err.Message)
	}
	size, ok := err.GetContext("size")
	if !ok || size != 6 {
		t.Errorf("NewStaleIndexError should set size context")
	}
}

func TestNewMalformedTimeError(t *testing.T) {
	err := NewMalformedTimeError("D5", "soon")

	if err.Type != ErrorTypeMalformedTime {
		t.Errorf("NewMalformedTimeError type = %v, want %v", err.Type, ErrorTypeMalformedTime)
	}
	if err.Code != "MALFORMED_TIME" {
		t.Errorf("NewMalformedTimeError code = %v", err.Code)
	}
}

func TestAsAppError(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation}

	result, ok := AsAppError(appError)
	if !ok || result != appError {
		t.Errorf("AsAppError should return the same AppError instance")
	}

	result, ok = AsAppError(errors.New("regular error"))
	if ok || result != nil {
		t.Errorf("AsAppError should return nil, false for regular error")
	}
}

func TestIsErrorType(t *testing.T) {
	appError := &AppError{Type: ErrorTypeStaleIndex}

	if !IsErrorType(appError, ErrorTypeStaleIndex) {
		t.Errorf("IsErrorType should return true for matching type")
	}
	if IsErrorType(appError, ErrorTypeTransport) {
		t.Errorf("IsErrorType should return false for different type")
	}
	if IsErrorType(errors.New("regular error"), ErrorTypeValidation) {
		t.Errorf("IsErrorType should return false for regular error")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Validation error", NewValidationError("invalid input", nil), "invalid input"},
		{"Not found error", NewNotFoundError("habit", "Q5"), "habit not found: Q5"},
		{"Database error", NewDatabaseError("query", errors.New("locked")), "A database error occurred. Please try again."},
		{"Timeout error", NewTimeoutError("get", "5s"), "The operation timed out. Please try again."},
		{"Transport error", NewTransportError("get", "D43", nil), "The spreadsheet is unreachable right now. Please try again."},
		{"Stale index error", NewStaleIndexError("tasks", 9, 2), "This list is out of date. Please reload it."},
		{"Regular error", errors.New("regular error"), "regular error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if GetErrorCode(&AppError{Code: "STALE_INDEX"}) != "STALE_INDEX" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}
	if GetErrorCode(errors.New("regular error")) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("invalid input", nil), false},
		{"Not found error", NewNotFoundError("task", "C43"), false},
		{"Stale index error", NewStaleIndexError("habits", 3, 1), false},
		{"Malformed time error", NewMalformedTimeError("D4", "x"), false},
		{"Database error", NewDatabaseError("query", errors.New("locked")), true},
		{"Transport error", NewTransportError("set", "C43", nil), true},
		{"Timeout error", NewTimeoutError("get", "5s"), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShouldLogError(tt.err)
			if result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}
