package textutils_test

import (
	"testing"

	"fjacquet/quickspend/internal/textutils"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{a: "", b: "", want: 1},
		{a: "coffee", b: "coffee", want: 1},
		{a: "Coffee", b: "cOFFEE", want: 1},
		{a: "abc", b: "", want: 0},
		{a: "kitten", b: "sitting", want: 1 - 3.0/7.0},
		{a: "netflix subscription", b: "netflix subscripton", want: 0.95},
		{a: "café", b: "cafe", want: 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.want, textutils.Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarity_Properties(t *testing.T) {
	words := []string{"", "a", "coffee", "coffe", "netflix", "₹ rent", "Groceries store"}
	for _, a := range words {
		assert.Equal(t, 1.0, textutils.Similarity(a, a), "reflexive: %q", a)
		for _, b := range words {
			s := textutils.Similarity(a, b)
			assert.Equal(t, s, textutils.Similarity(b, a), "symmetric: %q %q", a, b)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	}
}

func TestFindBestMatch(t *testing.T) {
	candidates := []textutils.Candidate[int]{
		{Key: "netflix subscription", Value: 8},
		{Key: "spotify premium", Value: 8},
		{Key: "electricity bill", Value: 1},
	}

	m, ok := textutils.FindBestMatch("netflix subscripton", candidates, textutils.DefaultSimilarityThreshold)
	assert.True(t, ok)
	assert.Equal(t, "netflix subscription", m.Key)
	assert.GreaterOrEqual(t, m.Score, 0.8)

	_, ok = textutils.FindBestMatch("groceries", candidates, textutils.DefaultSimilarityThreshold)
	assert.False(t, ok)

	_, ok = textutils.FindBestMatch[string]("anything", nil, textutils.DefaultSimilarityThreshold)
	assert.False(t, ok)
}

func TestFindBestMatch_ThresholdIsStrict(t *testing.T) {
	// "abcde" vs "abcdx": one edit over five runes, score exactly 0.8.
	candidates := []textutils.Candidate[string]{{Key: "abcdx", Value: "x"}}
	_, ok := textutils.FindBestMatch("abcde", candidates, 0.8)
	assert.False(t, ok)
}

func TestFindBestMatch_TieKeepsFirst(t *testing.T) {
	candidates := []textutils.Candidate[string]{
		{Key: "coffee shopx", Value: "first"},
		{Key: "coffee shopy", Value: "second"},
	}
	m, ok := textutils.FindBestMatch("coffee shop", candidates, 0.8)
	assert.True(t, ok)
	assert.Equal(t, "first", m.Value)
}
