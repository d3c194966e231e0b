package handlers

import (
	"errors"
	"regexp"
	"time"
	"unicode"
)

// Messages match the signup form so the frontend can surface them as-is.
var (
	errInvalidEmail     = errors.New("Please enter a valid email address")
	errPasswordTooShort = errors.New("Password must be at least 8 characters")
	errPasswordNoLower  = errors.New("Password must contain at least one lowercase letter")
	errPasswordNoUpper  = errors.New("Password must contain at least one uppercase letter")
	errPasswordNoDigit  = errors.New("Password must contain at least one number")
	errInvalidGender    = errors.New("Please select a gender")
	errInvalidBirthday  = errors.New("Birthday must be a valid YYYY-MM-DD date")
	errUnderage         = errors.New("You must be 18 years or older")
)

var emailFormatRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateEmailFormat(email string) error {
	if !emailFormatRegex.MatchString(email) {
		return errInvalidEmail
	}
	return nil
}

func validatePasswordStrength(password string) error {
	if len([]rune(password)) < 8 {
		return errPasswordTooShort
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if !hasLower {
		return errPasswordNoLower
	}
	if !hasUpper {
		return errPasswordNoUpper
	}
	if !hasDigit {
		return errPasswordNoDigit
	}
	return nil
}

func validateGender(gender string) error {
	switch gender {
	case "male", "female", "other":
		return nil
	}
	return errInvalidGender
}

// validateAge derives the age from a YYYY-MM-DD birthday as of now and
// enforces the adults-only rule. The derived value is stored on the user
// and never recomputed.
func validateAge(birthday string, now time.Time) (int, error) {
	born, err := time.Parse("2006-01-02", birthday)
	if err != nil {
		return 0, errInvalidBirthday
	}
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 18 {
		return 0, errUnderage
	}
	return age, nil
}
