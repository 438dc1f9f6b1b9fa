package validation

import (
	"regexp"
	"strings"

	"habit-bot/internal/sheet"
)

// MaxCallbackDataLength is the largest callback payload chat clients accept.
const MaxCallbackDataLength = 64

// Validator provides the input checks shared by the API and the config loader
type Validator struct {
	clockRegex    *regexp.Regexp
	callbackRegex *regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		clockRegex:    regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`),
		callbackRegex: regexp.MustCompile(`^[A-Za-z0-9_]+$`),
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidUserID checks that a chat user id is positive
func (v *Validator) IsValidUserID(id int64) bool {
	return id > 0
}

// IsValidClock checks a strict "H:MM" or "HH:MM" time of day
func (v *Validator) IsValidClock(s string) bool {
	return v.clockRegex.MatchString(strings.TrimSpace(s))
}

// IsValidCellRef checks that ref parses as an A1 reference
func (v *Validator) IsValidCellRef(ref string) bool {
	_, err := sheet.ParseCellAddress(ref)
	return err == nil
}

// IsValidCallbackData checks the payload charset and size
func (v *Validator) IsValidCallbackData(data string) bool {
	return len(data) <= MaxCallbackDataLength && v.callbackRegex.MatchString(data)
}

// ValidateUserID returns a ValidationError for a non-positive id
func (v *Validator) ValidateUserID(id int64) error {
	ve := NewValidationError()
	if !v.IsValidUserID(id) {
		ve.AddInvalidValueError("user_id", id, "must be a positive integer")
	}
	return ve.OrNil()
}

// ValidateCallbackData checks a callback payload before it is parsed
func (v *Validator) ValidateCallbackData(data string) error {
	ve := NewValidationError()
	switch {
	case !v.IsNonEmptyString(data):
		ve.AddRequiredError("callback_data")
	case len(data) > MaxCallbackDataLength:
		ve.AddInvalidLengthError("callback_data", data, MaxCallbackDataLength)
	case !v.IsValidCallbackData(data):
		ve.AddInvalidFormatError("callback_data", data, "letters, digits and underscores")
	}
	return ve.OrNil()
}

// ValidateClock checks an optional clock setting; empty means disabled
func (v *Validator) ValidateClock(field, s string) error {
	ve := NewValidationError()
	if v.IsNonEmptyString(s) && !v.IsValidClock(s) {
		ve.AddInvalidFormatError(field, s, "HH:MM")
	}
	return ve.OrNil()
}
