package rewrite

import (
	"strings"

	"academic_style/internal/match"
	"academic_style/internal/terms"
)

type Options struct {
	Width  int
	NoWrap bool
}

// Cleaner expands contractions and annotates informal terms with their
// suggested alternative.
type Cleaner struct {
	contractions terms.Table
	informal     terms.Table
	contractionM *match.Matcher
	informalM    *match.Matcher
}

func NewCleaner(set terms.Set) *Cleaner {
	return &Cleaner{
		contractions: set.Contractions,
		informal:     set.Informal,
		contractionM: match.NewTableMatcher(set.Contractions),
		informalM:    match.NewTableMatcher(set.Informal),
	}
}

var defaultCleaner = NewCleaner(terms.Default())

func Clean(text string, opts Options) string {
	return defaultCleaner.Clean(text, opts)
}

func ExpandContractions(text string) string {
	return defaultCleaner.ExpandContractions(text)
}

// Clean expands contractions first and only then annotates informal terms,
// so the informal pass sees the expanded text.
func (c *Cleaner) Clean(text string, opts Options) string {
	cleaned := c.ExpandContractions(text)
	cleaned = c.AnnotateInformal(cleaned)
	cleaned = Flatten(cleaned)
	if opts.NoWrap {
		return cleaned
	}
	width := opts.Width
	if width <= 0 {
		width = DefaultWrapWidth
	}
	return Fill(cleaned, width)
}

func (c *Cleaner) ExpandContractions(text string) string {
	return c.contractionM.ReplaceAll(text, func(word string) string {
		if full, ok := c.contractions.Lookup(word); ok {
			return full
		}
		return word
	})
}

// AnnotateInformal rewrites each informal term as "term (suggestion)".
func (c *Cleaner) AnnotateInformal(text string) string {
	return c.informalM.ReplaceAll(text, func(word string) string {
		suggestion, ok := c.informal.Get(strings.ToLower(word))
		if !ok || suggestion == "" {
			return word
		}
		return word + " (" + suggestion + ")"
	})
}
