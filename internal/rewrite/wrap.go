package rewrite

import (
	"regexp"
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

const DefaultWrapWidth = 90

var whitespaceRun = regexp.MustCompile(`\s+`)

// Flatten collapses every whitespace run to one space and trims the ends.
func Flatten(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// Fill wraps text into lines of at most width columns, breaking only at
// whitespace. A word longer than width stays whole on its own line.
// A non-positive width leaves text untouched.
func Fill(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.WrapString(text, uint(width))
}
