package matcher

import (
	"strings"
	"unicode"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// descriptionScore measures how far apart two transaction descriptions are,
// as a distance in [0, 1] where 0 is identical and 1 is unrelated. The
// comparison is token based: each query token is matched against its closest
// target token by normalized Levenshtein distance and the per-token
// distances are averaged, so word order and boilerplate around the payee
// name matter less than the payee name itself.
func descriptionScore(query, target string) float64 {
	queryTokens := tokenize(query)
	targetTokens := tokenize(target)
	if len(queryTokens) == 0 || len(targetTokens) == 0 {
		return 1.0
	}

	total := 0.0
	for _, qt := range queryTokens {
		best := 1.0
		for _, tt := range targetTokens {
			if d := tokenDistance(qt, tt); d < best {
				best = d
			}
			if best == 0 {
				break
			}
		}
		total += best
	}

	return total / float64(len(queryTokens))
}

// tokenDistance is the Levenshtein distance between two tokens normalized by
// the longer token's length.
func tokenDistance(a, b string) float64 {
	if a == b {
		return 0
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	return float64(distance) / float64(longest)
}

// tokenize lowercases a description and splits it on anything that is not a
// letter or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
