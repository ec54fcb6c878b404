package pkg

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var unsafeChars = regexp.MustCompile(`[<>&'"]`)

const maxInputLen = 1000

// SanitizeInput strips markup-significant characters from free-text input and
// caps its length. Applied to candidate names and skill lists before storage.
func SanitizeInput(text string) string {
	text = unsafeChars.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	if len(text) > maxInputLen {
		// back off to a rune boundary so the cap never splits a character
		cut := maxInputLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}
