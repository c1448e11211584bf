package validation

import (
	"github.com/agnivade/levenshtein"

	"github.com/cory-johannsen/uniques/internal/unique"
)

// DefaultMisspellingThreshold is the relative distance under which an
// unknown text is reported as a likely misspelling.
const DefaultMisspellingThreshold = 0.15

// RelativeDistance returns the edit distance between a and b scaled by their
// mean length; 0 means identical.
func RelativeDistance(a, b string) float64 {
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) * 2 / float64(total)
}

// similarTypes returns catalog entries whose skeleton is within threshold of
// placeholder. allowed restricts the candidates when non-nil.
func similarTypes(placeholder string, threshold float64, allowed func(unique.Type) bool) []unique.Type {
	var out []unique.Type
	for _, t := range unique.AllTypes() {
		if allowed != nil && !allowed(t) {
			continue
		}
		if RelativeDistance(t.Skeleton(), placeholder) <= threshold {
			out = append(out, t)
		}
	}
	return out
}
