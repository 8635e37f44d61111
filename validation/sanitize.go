package validation

import (
	"regexp"
	"strings"
)

var markupRegex = regexp.MustCompile(`<[^>]*>`)

// Sanitize strips any markup tags and trims surrounding whitespace. Persisted
// profile fields are rendered verbatim on the admin dashboard, so stored markup
// must never survive validation.
func Sanitize(s string) string {
	return strings.TrimSpace(markupRegex.ReplaceAllString(s, ""))
}
