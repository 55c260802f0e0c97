package domain

import (
	"regexp"
	"strings"
)

// Slug is a URL-safe tenant identifier: lowercase letters, digits and single
// hyphens, 3-50 characters.
type Slug string

const (
	slugMinLength = 3
	slugMaxLength = 50
)

var (
	slugPattern       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonAlphanumeric   = regexp.MustCompile(`[^a-z0-9]+`)
	multipleHyphens   = regexp.MustCompile(`-+`)
)

func ParseSlug(raw string) (Slug, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", NewValidation("Slug.Empty", "Slug is required.")
	}
	if len(raw) < slugMinLength {
		return "", NewValidation("Slug.TooShort", "Slug must be at least 3 characters.")
	}
	if len(raw) > slugMaxLength {
		return "", NewValidation("Slug.TooLong", "Slug cannot exceed 50 characters.")
	}
	if !slugPattern.MatchString(raw) {
		return "", NewValidation("Slug.InvalidFormat", "Slug can only contain lowercase letters, numbers, and hyphens.")
	}
	return Slug(raw), nil
}

// SlugFromName derives a slug from a display name by replacing runs of
// non-alphanumeric characters with single hyphens.
func SlugFromName(name string) (Slug, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return "", NewValidation("Slug.Empty", "Slug is required.")
	}
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return ParseSlug(s)
}

func (s Slug) String() string { return string(s) }
