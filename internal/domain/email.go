package domain

import (
	"regexp"
	"strings"
)

// Email is a validated, lowercased email address.
type Email string

const emailMaxLength = 256

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ParseEmail(raw string) (Email, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", NewValidation("Email.Empty", "Email address is required.")
	}
	if len(raw) > emailMaxLength {
		return "", NewValidation("Email.TooLong", "Email address cannot exceed 256 characters.")
	}
	if !emailPattern.MatchString(raw) {
		return "", NewValidation("Email.InvalidFormat", "Email address format is invalid.")
	}
	return Email(raw), nil
}

func (e Email) String() string { return string(e) }
