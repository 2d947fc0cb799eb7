package style

import (
	"errors"
	"fmt"
	"strings"

	"academic_style/internal/match"
	"academic_style/internal/segment"
	"academic_style/internal/terms"
)

const (
	LongSentenceWords  = 35
	ShortSentenceWords = 7
	RepeatedStartLimit = 2
)

type Kind string

const (
	KindLongSentence  Kind = "long_sentence"
	KindShortSentence Kind = "short_sentence"
	KindContraction   Kind = "contraction"
	KindInformal      Kind = "informal"
	KindFirstPerson   Kind = "first_person"
	KindRepeatedStart Kind = "repeated_start"
)

// ErrEmptyInput is returned for blank text so callers can tell it apart from
// a document with no issues.
var ErrEmptyInput = errors.New("no input text received")

const informalFallback = "Consider a more precise alternative."

type Issue struct {
	Kind          Kind   `json:"type"`
	SentenceIndex int    `json:"sentence_index"`
	Message       string `json:"message"`
	Extract       string `json:"extract"`
}

type Result struct {
	Sentences []segment.Sentence `json:"sentences"`
	Issues    []Issue            `json:"issues"`
	Stats     Stats              `json:"stats"`
}

func (r Result) CountByKind() map[Kind]int {
	out := make(map[Kind]int)
	for _, is := range r.Issues {
		out[is.Kind]++
	}
	return out
}

// Analyzer checks sentences against one term set. It holds no mutable state
// and may be shared between goroutines.
type Analyzer struct {
	informal     terms.Table
	contractions *match.Matcher
	informalM    *match.Matcher
}

func NewAnalyzer(set terms.Set) *Analyzer {
	return &Analyzer{
		informal:     set.Informal,
		contractions: match.NewTableMatcher(set.Contractions),
		informalM:    match.NewTableMatcher(set.Informal),
	}
}

var defaultAnalyzer = NewAnalyzer(terms.Default())

// Analyze runs the built-in tables over text.
func Analyze(text string) (Result, error) {
	return defaultAnalyzer.Analyze(text)
}

func (a *Analyzer) Analyze(text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyInput
	}

	sentences := segment.Sentences(text)
	issues := make([]Issue, 0, len(sentences))
	starts := make([]string, len(sentences))
	lengths := make([]int, len(sentences))

	for i, s := range sentences {
		idx := s.Index
		words := match.Words(s.Text)
		lengths[i] = len(words)

		switch n := len(words); {
		case n > LongSentenceWords:
			issues = append(issues, Issue{
				Kind:          KindLongSentence,
				SentenceIndex: idx,
				Message: fmt.Sprintf("Sentence %d is quite long (%d words). "+
					"Consider splitting it for clarity.", idx, n),
				Extract: s.Text,
			})
		case n < ShortSentenceWords:
			issues = append(issues, Issue{
				Kind:          KindShortSentence,
				SentenceIndex: idx,
				Message: fmt.Sprintf("Sentence %d is very short (%d words). "+
					"In academic writing, you may wish to combine it with a neighbouring sentence.", idx, n),
				Extract: s.Text,
			})
		}

		for _, m := range a.contractions.FindAll(s.Text) {
			issues = append(issues, Issue{
				Kind:          KindContraction,
				SentenceIndex: idx,
				Message: fmt.Sprintf("Contraction '%s' found in sentence %d. "+
					"Consider using the full form in academic writing.", m.Text, idx),
				Extract: s.Text,
			})
		}

		for _, m := range a.informalM.FindAll(s.Text) {
			suggestion, ok := a.informal.Get(strings.ToLower(m.Text))
			if !ok {
				suggestion = informalFallback
			}
			issues = append(issues, Issue{
				Kind:          KindInformal,
				SentenceIndex: idx,
				Message:       fmt.Sprintf("Informal or vague word '%s' in sentence %d. %s", m.Text, idx, suggestion),
				Extract:       s.Text,
			})
		}

		for _, m := range match.FirstPerson.FindAll(s.Text) {
			issues = append(issues, Issue{
				Kind:          KindFirstPerson,
				SentenceIndex: idx,
				Message: fmt.Sprintf("First-person pronoun '%s' in sentence %d. "+
					"Check if this is appropriate for your assignment guidelines.", m.Text, idx),
				Extract: s.Text,
			})
		}

		starts[i] = OpeningKey(words)
	}

	// Repetition is document-wide, so it needs the full count first.
	counts := make(map[string]int, len(starts))
	for _, k := range starts {
		if k != "" {
			counts[k]++
		}
	}
	for i, k := range starts {
		if k == "" || counts[k] <= RepeatedStartLimit {
			continue
		}
		issues = append(issues, Issue{
			Kind:          KindRepeatedStart,
			SentenceIndex: sentences[i].Index,
			Message: fmt.Sprintf("Several sentences start with '%s'. "+
				"Varying openings can improve academic style and flow.", k),
			Extract: sentences[i].Text,
		})
	}

	return Result{
		Sentences: sentences,
		Issues:    issues,
		Stats:     computeStats(lengths),
	}, nil
}

// OpeningKey is the lowercase first two tokens, the single token of a
// one-word sentence, or "" when there are none.
func OpeningKey(words []string) string {
	switch {
	case len(words) >= 2:
		return strings.ToLower(words[0] + " " + words[1])
	case len(words) == 1:
		return strings.ToLower(words[0])
	default:
		return ""
	}
}
