package service

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxResumeChars caps the résumé text forwarded to the model.
	MaxResumeChars = 14000
	// TruncationMarker is appended when the résumé exceeds MaxResumeChars.
	TruncationMarker = "\n\n...[truncated for model context]"
)

// Normalize strips C0/C1 control characters, collapses whitespace runs into a
// single space and caps the result at MaxResumeChars characters.
func Normalize(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if isControl(r) {
			return -1
		}
		return r
	}, text)

	collapsed := strings.Join(strings.Fields(stripped), " ")
	if utf8.RuneCountInString(collapsed) <= MaxResumeChars {
		return collapsed
	}

	return string([]rune(collapsed)[:MaxResumeChars]) + TruncationMarker
}

func isControl(r rune) bool {
	return (r >= 0x00 && r <= 0x1F) || (r >= 0x7F && r <= 0x9F)
}
