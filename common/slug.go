package common

import (
	"fmt"
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases input and collapses runs of non-alphanumeric characters
// into single hyphens. Falls back to the given default when nothing usable
// remains.
func Slugify(input, fallback string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > 64 {
		s = strings.Trim(s[:64], "-")
	}
	if s == "" {
		s = fallback
	}
	if s == "" {
		return "", fmt.Errorf("cannot derive slug from %q", input)
	}
	return s, nil
}
