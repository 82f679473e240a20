package graph

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

// roadAliases folds well-known Bangalore road spellings onto one canonical
// normalized name before the traffic join.
// Keys are post-normalization forms (suffixes already expanded).
var roadAliases = map[string]string{
	"m g road":     "mg road",
	"orr":          "outer ring road",
	"bellary road": "ballari road",
	"blr road":     "ballari road",
	"bangalore international airport road": "airport road",
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]`)

// NormalizeName lowercases, strips punctuation and expands common road
// suffix abbreviations.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	n := strings.ToLower(strings.TrimSpace(name))
	n = nonAlnum.ReplaceAllString(n, "")
	n = strings.ReplaceAll(n, " rd", " road")
	n = strings.ReplaceAll(n, " st", " street")
	n = strings.ReplaceAll(n, " blvd", " boulevard")
	n = strings.ReplaceAll(n, " ave", " avenue")
	n = strings.ReplaceAll(n, "mg ", "m g ")
	return n
}

// NormalizeAndAlias normalizes a road name and folds it through the alias
// table.
func NormalizeAndAlias(name string) string {
	n := NormalizeName(name)
	if alias, ok := roadAliases[n]; ok {
		return alias
	}
	return n
}

// BestMatch returns the candidate most similar to name, provided its
// similarity reaches the cutoff. Candidates must be sorted for deterministic
// tie-breaking.
func BestMatch(name string, candidates []string, cutoff float64) (string, bool) {
	if name == "" {
		return "", false
	}
	best := ""
	bestScore := -1.0
	for _, c := range candidates {
		s := Similarity(name, c)
		if s >= cutoff && s > bestScore {
			best = c
			bestScore = s
		}
	}
	return best, best != ""
}

// Similarity is a normalized edit-distance ratio in [0, 1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
