package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"tour_travels_backend/pkg/utils"
)

// ErrValidation is the sentinel all field validation failures unwrap to.
var ErrValidation = errors.New("validation error")

// FieldValidationError reports a single malformed field with a human-readable
// reason. It unwraps to ErrValidation so handlers can classify it.
type FieldValidationError struct {
	Field   string
	Message string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldValidationError) Unwrap() error {
	return ErrValidation
}

func newFieldError(field, message string) error {
	return &FieldValidationError{Field: field, Message: message}
}

var (
	emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)
	phoneRegex = regexp.MustCompile(`^\+?1?\d{9,15}$`)
)

// validateEmail normalizes (lowercase, trim) and validates an email address.
func validateEmail(field, email string) (string, error) {
	normalized := utils.NormalizeEmail(email)
	if !emailRegex.MatchString(normalized) {
		return "", newFieldError(field, "must be a valid email address")
	}
	return normalized, nil
}

// validatePhone strips spaces, hyphens and parentheses and validates the
// remaining digits. Empty input is allowed, phone is optional.
func validatePhone(field, phone string) (string, error) {
	cleaned := utils.SanitizePhone(phone)
	if cleaned == "" {
		return "", nil
	}
	if !phoneRegex.MatchString(cleaned) {
		return "", newFieldError(field, "must contain 9 to 15 digits, optionally prefixed with +")
	}
	return cleaned, nil
}

// validateMinLength trims the value and enforces a minimum length in
// characters, not bytes.
func validateMinLength(field, value string, min int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if utf8.RuneCountInString(trimmed) < min {
		return "", newFieldError(field, fmt.Sprintf("must be at least %d characters long", min))
	}
	return trimmed, nil
}

// validateRating enforces an integer rating in [1,5].
func validateRating(field string, rating int) error {
	if rating < 1 || rating > 5 {
		return newFieldError(field, "must be between 1 and 5")
	}
	return nil
}

// validateTravelDate parses a YYYY-MM-DD date and rejects future dates.
// Calendar dates are compared in the server's location, today is allowed.
func validateTravelDate(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	parsed, err := time.ParseInLocation("2006-01-02", trimmed, time.Local)
	if err != nil {
		return "", newFieldError(field, "must be a valid date in YYYY-MM-DD format")
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if parsed.After(today) {
		return "", newFieldError(field, "cannot be in the future")
	}
	return trimmed, nil
}
