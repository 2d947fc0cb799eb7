package match

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"academic_style/internal/terms"
)

// A token is a word optionally continued by one apostrophe part, so
// "don't" counts once.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+(?:'[\p{L}\p{N}_]+)?`)

// FirstPerson only knows these exact casings. Lowercase "i" is not flagged.
var FirstPerson = &Matcher{re: regexp.MustCompile(`\b(?:I|we|We|our|Our|us)\b`)}

type Match struct {
	Start int
	End   int
	Text  string
}

// Matcher finds whole-word, non-overlapping occurrences of a fixed set of
// phrases, left to right. A nil pattern matches nothing.
type Matcher struct {
	re *regexp.Regexp
}

// NewTableMatcher matches every key of t case-insensitively. Keys are tried
// longest first; multi-word keys match as literal word sequences.
func NewTableMatcher(t terms.Table) *Matcher {
	return newAlternation(t.Keys(), true)
}

// NewPhraseMatcher matches a single literal phrase case-insensitively.
func NewPhraseMatcher(phrase string) *Matcher {
	return newAlternation([]string{phrase}, true)
}

func newAlternation(keys []string, fold bool) *Matcher {
	if len(keys) == 0 {
		return &Matcher{}
	}
	sorted := slices.Clone(keys)
	slices.SortFunc(sorted, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	quoted := make([]string, len(sorted))
	for i, k := range sorted {
		quoted[i] = regexp.QuoteMeta(k)
	}
	expr := `\b(?:` + strings.Join(quoted, "|") + `)\b`
	if fold {
		expr = `(?i)` + expr
	}
	return &Matcher{re: regexp.MustCompile(expr)}
}

func (m *Matcher) FindAll(s string) []Match {
	if m == nil || m.re == nil {
		return nil
	}
	locs := m.re.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return nil
	}
	out := make([]Match, len(locs))
	for i, loc := range locs {
		out[i] = Match{Start: loc[0], End: loc[1], Text: s[loc[0]:loc[1]]}
	}
	return out
}

// ReplaceAll substitutes every match with fn(matched text).
func (m *Matcher) ReplaceAll(s string, fn func(string) string) string {
	if m == nil || m.re == nil {
		return s
	}
	return m.re.ReplaceAllStringFunc(s, fn)
}

func Words(s string) []string {
	return wordPattern.FindAllString(s, -1)
}
