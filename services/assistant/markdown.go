package assistant

import (
	"html"
	"regexp"
	"strings"
)

var (
	boldPattern   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern = regexp.MustCompile(`\*([^*]+)\*`)
	bulletPattern = regexp.MustCompile(`(?m)^[-*] (.*)$`)
)

// MarkdownToHTML applies the light normalization the chat panel renders:
// escaped text with bold, italics, bullets and line breaks. Anything fancier
// in the model output is left as plain text.
func MarkdownToHTML(text string) string {
	out := html.EscapeString(strings.TrimSpace(text))
	out = boldPattern.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicPattern.ReplaceAllString(out, "<em>$1</em>")
	out = bulletPattern.ReplaceAllString(out, "&bull; $1")
	out = strings.ReplaceAll(out, "\n", "<br>")
	return out
}
