package textutils

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultSimilarityThreshold is the score a candidate must strictly exceed to match.
const DefaultSimilarityThreshold = 0.8

// Similarity scores two strings in [0, 1] as 1 - levenshtein/maxLen, compared
// case-insensitively rune by rune. Two empty strings are identical.
func Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)

	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// Candidate is one entry FindBestMatch can select.
type Candidate[V any] struct {
	Key   string
	Value V
}

// Match is the selected candidate and its score.
type Match[V any] struct {
	Candidate[V]
	Score float64
}

// FindBestMatch returns the candidate most similar to input whose score is strictly
// greater than threshold. On equal scores the earlier candidate wins, so callers
// control tie-breaking through slice order.
func FindBestMatch[V any](input string, candidates []Candidate[V], threshold float64) (Match[V], bool) {
	var (
		best  Match[V]
		found bool
	)
	for _, c := range candidates {
		score := Similarity(input, c.Key)
		if score > threshold && (!found || score > best.Score) {
			best = Match[V]{Candidate: c, Score: score}
			found = true
		}
	}
	return best, found
}
