package session

import (
	"errors"
	"regexp"
	"strings"
)

// MinPasswordLen matches the backend's registration policy.
const MinPasswordLen = 8

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validation failures are caught before any network call and reported next
// to the offending input.
var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email address is not valid")
	ErrNameRequired     = errors.New("full name is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// ValidateLogin checks login form input.
func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if !emailRe.MatchString(email) {
		return ErrEmailInvalid
	}
	if password == "" {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateRegistration checks registration form input.
func ValidateRegistration(email, fullName, password, confirm string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if !emailRe.MatchString(email) {
		return ErrEmailInvalid
	}
	if strings.TrimSpace(fullName) == "" {
		return ErrNameRequired
	}
	if len(password) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}
