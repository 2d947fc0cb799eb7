package segment

import (
	"regexp"
	"strings"
)

// A terminator glued to the next letter ("Hi.There") gets a space first.
var missingSpace = regexp.MustCompile(`([.!?])([A-Za-z])`)

type Sentence struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Split breaks text at every '.', '!' or '?', keeping the mark on the
// preceding sentence. It knows nothing about abbreviations, quotes or
// decimals, so "3.5" and "..." split too.
func Split(text string) []string {
	text = missingSpace.ReplaceAllString(text, "$1 $2")

	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

func Sentences(text string) []Sentence {
	parts := Split(text)
	out := make([]Sentence, len(parts))
	for i, p := range parts {
		out[i] = Sentence{Index: i + 1, Text: p}
	}
	return out
}
