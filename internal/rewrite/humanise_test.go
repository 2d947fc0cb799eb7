package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"academic_style/internal/terms"
)

type stubSource struct {
	value  float64
	index  int
	floats int
}

func (s *stubSource) Float64() float64 {
	s.floats++
	return s.value
}

func (s *stubSource) IntN(n int) int {
	return s.index % n
}

func TestHumaniseNeverInserting(t *testing.T) {
	src := &stubSource{value: DefaultConnectorProbability}
	h := NewHumaniser(terms.Default(), src, DefaultConnectorProbability)

	got := h.Humanise("First sentence here.  Second one follows.\nThird one ends.", 0)
	assert.Equal(t, "First sentence here. Second one follows. Third one ends.", got)
	for _, c := range terms.Default().Connectors {
		assert.NotContains(t, got, strings.TrimSpace(c))
	}
	assert.Equal(t, 2, src.floats, "one draw per sentence after the first")
}

func TestHumaniseAlwaysInserting(t *testing.T) {
	src := &stubSource{value: 0, index: 4}
	h := NewHumaniser(terms.Default(), src, DefaultConnectorProbability)

	got := h.Humanise("First sentence here. Second one follows. Third one ends.", 0)
	assert.Equal(t, "First sentence here. However, second one follows. However, third one ends.", got)
}

func TestHumaniseAppliesRephrasings(t *testing.T) {
	h := NewHumaniser(terms.Default(), &stubSource{value: 1}, DefaultConnectorProbability)

	got := h.Humanise("In conclusion, it works. Therefore it holds.", 0)
	assert.Equal(t, "overall, it works. therefore it holds.", got)
}

func TestHumaniseSeededIsReproducible(t *testing.T) {
	text := strings.Repeat("The sample was large. The effect was small. ", 8)

	a := NewHumaniser(terms.Default(), NewSeededSource(42), DefaultConnectorProbability).Humanise(text, 90)
	b := NewHumaniser(terms.Default(), NewSeededSource(42), DefaultConnectorProbability).Humanise(text, 90)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "The sample was large."))
}

func TestHumaniseEmpty(t *testing.T) {
	h := NewHumaniser(terms.Default(), &stubSource{}, DefaultConnectorProbability)
	assert.Equal(t, "", h.Humanise(" \n ", 90))
}

func TestHumaniseWraps(t *testing.T) {
	h := NewHumaniser(terms.Default(), &stubSource{value: 1}, DefaultConnectorProbability)
	text := strings.Repeat("Results were consistent across the cohort. ", 6)

	for _, line := range strings.Split(h.Humanise(text, 30), "\n") {
		assert.LessOrEqual(t, len(line), 30)
	}
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "élan", lowerFirst("Élan"))
	assert.Equal(t, "", lowerFirst(""))
}
