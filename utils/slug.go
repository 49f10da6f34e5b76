package utils

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases and transliterates a title into a hyphenated ASCII slug
// suitable for use inside document ids.
func Slugify(s string) string {
	s = unidecode.Unidecode(s)
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugCleaner.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
