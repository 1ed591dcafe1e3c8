package scorer

import (
	"math"

	"recall/internal/tokenizer"
)

// Score computes the lexical similarity between two token sequences as
// the Ochiai coefficient over their unique-token sets:
//
//	|Q ∩ C| / sqrt(|Q| * |C|)
//
// The measure is symmetric and bounded in (0, 1]; it is exactly 0 when
// either set is empty or the sets are disjoint, and exactly 1 only when
// both sets are equal. No term weighting, no fuzzy matching.
func Score(queryTokens, chunkTokens []string) float64 {
	q := tokenizer.Set(queryTokens)
	c := tokenizer.Set(chunkTokens)
	return ScoreSets(q, c)
}

// ScoreSets is Score for callers that already hold unique-token sets,
// e.g. a retriever reusing one query set across a whole scan.
func ScoreSets(q, c map[string]struct{}) float64 {
	if len(q) == 0 || len(c) == 0 {
		return 0
	}
	// Iterate the smaller set.
	small, large := q, c
	if len(c) < len(q) {
		small, large = c, q
	}
	overlap := 0
	for t := range small {
		if _, ok := large[t]; ok {
			overlap++
		}
	}
	if overlap == 0 {
		return 0
	}
	return float64(overlap) / math.Sqrt(float64(len(q))*float64(len(c)))
}
