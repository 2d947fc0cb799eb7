package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"academic_style/internal/style"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

const rule = "------------------------------------------------------------"

type Document struct {
	Source        string             `json:"source,omitempty"`
	SentenceCount int                `json:"sentence_count"`
	IssueCount    int                `json:"issue_count"`
	Stats         style.Stats        `json:"stats"`
	CountsByKind  map[style.Kind]int `json:"counts_by_kind"`
	Issues        []style.Issue      `json:"issues"`
	Cleaned       string             `json:"cleaned,omitempty"`
}

func NewDocument(source string, r style.Result) Document {
	issues := r.Issues
	if issues == nil {
		issues = []style.Issue{}
	}
	return Document{
		Source:        source,
		SentenceCount: len(r.Sentences),
		IssueCount:    len(r.Issues),
		Stats:         r.Stats,
		CountsByKind:  r.CountByKind(),
		Issues:        issues,
	}
}

func Write(w io.Writer, format string, r style.Result) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return WriteText(w, r)
	case FormatJSON:
		return WriteJSON(w, NewDocument("", r))
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteText prints the report in the layout of the original command-line
// assistant.
func WriteText(w io.Writer, r style.Result) error {
	var b strings.Builder
	b.WriteString("=== Style Analysis (UK Academic) ===\n\n")
	fmt.Fprintf(&b, "Total sentences: %s\n", humanize.Comma(int64(len(r.Sentences))))
	fmt.Fprintf(&b, "Total issues found: %s\n\n", humanize.Comma(int64(len(r.Issues))))

	if len(r.Issues) == 0 {
		b.WriteString("No major style issues detected based on the current checks.\n")
	}
	for i, is := range r.Issues {
		fmt.Fprintf(&b, "Issue %d: [%s]\n", i+1, is.Kind)
		b.WriteString(is.Message + "\n")
		b.WriteString("Sentence: " + is.Extract + "\n")
		b.WriteString(rule + "\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func WriteJSON(w io.Writer, docs ...Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	var v any = docs
	if len(docs) == 1 {
		v = docs[0]
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
