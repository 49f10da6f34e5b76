package utils

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML removes markup from upstream summary text, keeping only the
// rendered character data.
func StripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(s))
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tok.Text())
		}
	}
}

// Truncate cuts s to at most max characters. The ellipsis is appended to
// every result, short or cut, so card text always trails off.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		runes = runes[:max]
	}
	return string(runes) + "..."
}
