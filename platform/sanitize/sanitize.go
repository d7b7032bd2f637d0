// Package sanitize strips markup from short free-text labels before they are
// stored.
package sanitize

import (
	"regexp"
	"strings"
)

// Only sequences that open like a real tag, comment or doctype are matched,
// so comparisons such as "a < b > c" survive untouched.
var tagPattern = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)

// Text removes HTML tags and trims surrounding whitespace. Entities are left
// encoded.
func Text(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}
