package style

import "math"

type Stats struct {
	WordCount          int     `json:"word_count"`
	MeanSentenceLength float64 `json:"mean_sentence_length"`
	SentenceLengthSD   float64 `json:"sentence_length_sd"`
}

// computeStats ignores sentences without words, e.g. a stray ".".
func computeStats(lengths []int) Stats {
	var st Stats
	counted := make([]float64, 0, len(lengths))
	for _, n := range lengths {
		st.WordCount += n
		if n > 0 {
			counted = append(counted, float64(n))
		}
	}
	if len(counted) == 0 {
		return st
	}

	total := 0.0
	for _, l := range counted {
		total += l
	}
	st.MeanSentenceLength = total / float64(len(counted))
	if len(counted) == 1 {
		return st
	}

	var variance float64
	for _, l := range counted {
		d := l - st.MeanSentenceLength
		variance += d * d
	}
	variance /= float64(len(counted))
	st.SentenceLengthSD = math.Sqrt(variance)
	return st
}
