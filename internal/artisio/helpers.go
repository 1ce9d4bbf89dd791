package artisio

import (
	"regexp"
	"strings"
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// CleanHTML strips markup tags and non-breaking spaces from localized API
// fields, which are served as HTML fragments.
func CleanHTML(raw string) string {
	if raw == "" {
		return ""
	}
	text := htmlTagRe.ReplaceAllString(raw, "")
	text = strings.ReplaceAll(text, " ", " ")
	return strings.TrimSpace(text)
}
