package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase and trim", "  Hosur Road ", "hosur road"},
		{"punctuation stripped", "St. Mark's Rd", "st marks road"},
		{"rd suffix", "Bannerghatta Rd", "bannerghatta road"},
		{"ave suffix", "First Ave", "first avenue"},
		{"mg spacing", "MG Road", "m g road"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestNormalizeAndAlias(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ORR", "outer ring road"},
		{"Bellary Rd", "ballari road"},
		{"M G Road", "mg road"},
		{"Hosur Road", "hosur road"}, // no alias needed
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAndAlias(tt.in), "input %q", tt.in)
	}
}

func TestBestMatch(t *testing.T) {
	candidates := []string{"hosur road", "mg road", "outer ring road"}

	t.Run("close match above cutoff", func(t *testing.T) {
		got, ok := BestMatch("hosur rood", candidates, 0.85)
		assert.True(t, ok)
		assert.Equal(t, "hosur road", got)
	})

	t.Run("nothing above cutoff", func(t *testing.T) {
		_, ok := BestMatch("silk board junction", candidates, 0.85)
		assert.False(t, ok)
	})

	t.Run("empty name", func(t *testing.T) {
		_, ok := BestMatch("", candidates, 0.85)
		assert.False(t, ok)
	})
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("abc", "abc"))
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.InDelta(t, 0.9, Similarity("hosur road", "hosur rood"), 1e-9)
	assert.Less(t, Similarity("abc", "xyz"), 0.5)
}
