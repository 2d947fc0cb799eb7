package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academic_style/internal/terms"
)

func TestCleanAnnotatesInformalTerms(t *testing.T) {
	got := Clean("There is a lot of stuff here.", Options{NoWrap: true})
	assert.Contains(t, got, "a lot (a substantial amount)")
	assert.Contains(t, got, "stuff (material / content / items (be specific))")
}

func TestCleanExpandsContractions(t *testing.T) {
	got := Clean("Don't worry,  I'm sure IT'S\n\nfine and we can't stop.", Options{NoWrap: true})
	assert.Equal(t, "do not worry, I am sure it is fine and we cannot stop.", got)
}

func TestCleanLeavesUnknownCasingAlone(t *testing.T) {
	// "i'm" matches case-insensitively but neither casing is in the table.
	assert.Equal(t, "i'm here", ExpandContractions("i'm here"))
}

func TestExpandContractionsIsIdempotent(t *testing.T) {
	texts := []string{
		"I don't think it's a big deal. We can't and won't.",
		"They're sure that's what there's left; you'll see, we've done it.",
		"Cannot, CANNOT, can't.",
	}
	for _, text := range texts {
		once := ExpandContractions(text)
		assert.Equal(t, once, ExpandContractions(once), text)
	}
}

func TestCleanExpandsBeforeAnnotating(t *testing.T) {
	set := terms.Default()
	set.Contractions = terms.NewTable(map[string]string{"lotta": "a lot of"})
	c := NewCleaner(set)

	got := c.Clean("We need a lotta data.", Options{NoWrap: true})
	assert.Equal(t, "We need a lot (a substantial amount) of data.", got)
}

func TestCleanWrapsToWidth(t *testing.T) {
	text := strings.Repeat("The analysis of the sample was careful and thorough. ", 10)
	got := Clean(text, Options{Width: 40})

	lines := strings.Split(got, "\n")
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 40, line)
	}
	assert.Equal(t, Flatten(text), strings.Join(lines, " "))
}

func TestCleanDefaultsToNinetyColumns(t *testing.T) {
	text := strings.Repeat("word ", 60)
	for _, line := range strings.Split(Clean(text, Options{}), "\n") {
		assert.LessOrEqual(t, len(line), DefaultWrapWidth)
	}
}

func TestFillLongWordStaysWhole(t *testing.T) {
	got := Fill("tiny incomprehensibilities end", 10)
	assert.Contains(t, strings.Split(got, "\n"), "incomprehensibilities")
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, "a b c", Flatten("  a \n\t b   c \r\n"))
}
