package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "simple", in: "One two. Three four!  Five six?", want: []string{"One two.", "Three four!", "Five six?"}},
		{name: "missing space", in: "Hi.There we go", want: []string{"Hi.", "There we go"}},
		{name: "trailing fragment", in: "Done. and then", want: []string{"Done.", "and then"}},
		{name: "no terminator", in: "  just words here  ", want: []string{"just words here"}},
		{name: "ellipsis splits per mark", in: "Wait... Go.", want: []string{"Wait.", ".", ".", "Go."}},
		{name: "decimal splits", in: "It rose 3.5 points.", want: []string{"It rose 3.", "5 points."}},
		{name: "whitespace only", in: " \n\t ", want: nil},
		{name: "empty", in: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.in))
		})
	}
}

func TestSplitIsDeterministic(t *testing.T) {
	text := "First point. Second point!Third point? trailing"
	assert.Equal(t, Split(text), Split(text))
}

func TestSplitRejoinKeepsCount(t *testing.T) {
	text := "The method is sound. The data are noisy!Results follow? A final remark"
	first := Split(text)
	second := Split(strings.Join(first, " "))
	assert.Len(t, second, len(first))
}

func TestSentencesAreOneBased(t *testing.T) {
	got := Sentences("A. B. C.")
	require.Len(t, got, 3)
	for i, s := range got {
		assert.Equal(t, i+1, s.Index)
	}
	assert.Equal(t, "C.", got[2].Text)
}
