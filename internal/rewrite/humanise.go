package rewrite

import (
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"academic_style/internal/match"
	"academic_style/internal/segment"
	"academic_style/internal/terms"
)

const DefaultConnectorProbability = 0.35

// Source is the randomness the humaniser draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type rephrasing struct {
	m           *match.Matcher
	replacement string
}

// Humaniser is not safe for concurrent use; it advances its Source.
type Humaniser struct {
	src         Source
	probability float64
	connectors  []string
	rephrasings []rephrasing
}

func NewHumaniser(set terms.Set, src Source, probability float64) *Humaniser {
	h := &Humaniser{
		src:         src,
		probability: probability,
		connectors:  set.Connectors,
	}
	for _, r := range set.Rephrasings {
		h.rephrasings = append(h.rephrasings, rephrasing{
			m:           match.NewPhraseMatcher(r.Phrase),
			replacement: r.Replacement,
		})
	}
	return h
}

// Humanise rewrites text sentence by sentence and wraps the joined result to
// width columns (no wrapping when width <= 0).
func (h *Humaniser) Humanise(text string, width int) string {
	text = Flatten(text)
	if text == "" {
		return ""
	}

	sentences := segment.Split(text)
	out := make([]string, 0, len(sentences))
	for i, s := range sentences {
		out = append(out, h.tone(s, i))
	}
	return Fill(strings.Join(out, " "), width)
}

func (h *Humaniser) tone(sentence string, idx int) string {
	s := h.rephrase(sentence)
	if idx > 0 && len(h.connectors) > 0 && h.src.Float64() < h.probability {
		connector := h.connectors[h.src.IntN(len(h.connectors))]
		s = connector + lowerFirst(s)
	}
	if s == "" {
		return sentence
	}
	return s
}

func (h *Humaniser) rephrase(s string) string {
	for _, r := range h.rephrasings {
		s = r.m.ReplaceAll(s, func(string) string { return r.replacement })
	}
	return s
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
