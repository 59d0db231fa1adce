package utils

import "strings"

const ellipsis = "..."

// TruncateForLog keeps prompt and model output previews in debug logs
// bounded. limit counts runes; longer text is cut and marked with an
// ellipsis. A non-positive limit disables the preview.
func TruncateForLog(text string, limit int) string {
	if limit <= 0 {
		return ""
	}

	text = strings.TrimSpace(text)
	runes := 0
	for i := range text {
		if runes == limit {
			return text[:i] + ellipsis
		}
		runes++
	}
	return text
}
