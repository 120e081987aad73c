package diag

import (
	"slices"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// MaxSuggestDistance is the largest edit distance still offered as a hint.
const MaxSuggestDistance = 2

// Closest returns the candidate nearest to word by case-insensitive edit
// distance, or "" when nothing is within maxDistance. Ties go to the
// alphabetically first candidate.
func Closest(word string, candidates []string, maxDistance int) string {
	sorted := slices.Clone(candidates)
	slices.Sort(sorted)

	match := ""
	best := maxDistance + 1
	needle := []rune(strings.ToLower(word))
	for _, c := range sorted {
		d := levenshtein.DistanceForStrings(needle, []rune(strings.ToLower(c)), levenshtein.DefaultOptionsWithSub)
		if d == 0 {
			return c
		}
		if d < best {
			best = d
			match = c
		}
	}
	return match
}

// DidYouMean formats a note for Closest, or "" when there is no match.
func DidYouMean(word string, candidates []string) string {
	if c := Closest(word, candidates, MaxSuggestDistance); c != "" && c != word {
		return "did you mean " + c + "?"
	}
	return ""
}
