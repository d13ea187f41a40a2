package validation

import (
	"fmt"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// maxSuggestionCandidates caps the candidate set scanned per missing id.
const maxSuggestionCandidates = 200

// suggestSimilar finds the closest candidate id to a missing id and
// renders a "Did you mean" hint, or "" when nothing is close enough.
//
// Closeness is edit distance at most 2, or at most a third of the missing
// id's length for long ids. The threshold is a heuristic, not a contract:
// it only needs to surface near-misses like one-character typos.
func suggestSimilar(missing string, candidates []string) string {
	if len(candidates) > maxSuggestionCandidates {
		candidates = candidates[:maxSuggestionCandidates]
	}

	threshold := 2
	if t := len(missing) / 3; t > threshold {
		threshold = t
	}

	best := ""
	bestDistance := threshold + 1
	for _, candidate := range candidates {
		if candidate == missing {
			continue
		}
		d := levenshtein.DistanceForStrings([]rune(missing), []rune(candidate), levenshtein.DefaultOptions)
		if d < bestDistance {
			bestDistance = d
			best = candidate
		}
	}

	if best == "" {
		return ""
	}
	return fmt.Sprintf("Did you mean '%s'?", best)
}
