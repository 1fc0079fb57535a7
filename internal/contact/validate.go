package contact

import (
	"errors"
	"regexp"
)

// Validation errors, in the order Validate checks them.
var (
	ErrNamesRequired         = errors.New("names required")
	ErrCategoryRequired      = errors.New("category required")
	ErrContactMethodRequired = errors.New("contact method required")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrInvalidPhone          = errors.New("invalid phone")
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+\.[A-Za-z0-9-.]+$`)

// Validate checks f and returns the first failing rule, or nil.
func Validate(f Fields) error {
	if f.Name == "" && f.Surname == "" {
		return ErrNamesRequired
	}
	if f.Category == "" {
		return ErrCategoryRequired
	}
	if !f.Category.Valid() {
		return ErrUnknownCategory
	}
	if f.Email == "" && f.Phone == "" {
		return ErrContactMethodRequired
	}
	if f.Email != "" && !ValidEmail(f.Email) {
		return ErrInvalidEmail
	}
	if f.Phone != "" && !ValidPhone(f.Phone) {
		return ErrInvalidPhone
	}
	return nil
}

// IsValidationError reports whether err is one of the validation errors.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrNamesRequired,
		ErrCategoryRequired,
		ErrUnknownCategory,
		ErrContactMethodRequired,
		ErrInvalidEmail,
		ErrInvalidPhone,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ValidEmail reports whether email has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone reports whether phone is a non-empty run of ASCII digits.
func ValidPhone(phone string) bool {
	if phone == "" {
		return false
	}
	for i := 0; i < len(phone); i++ {
		if phone[i] < '0' || phone[i] > '9' {
			return false
		}
	}
	return true
}
