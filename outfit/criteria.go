package outfit

import (
	"regexp"
	"strings"
)

// SelectionCriteria is the set of user-chosen constraints driving one
// outfit-generation call. Built fresh per request, never stored by the
// engine itself.
type SelectionCriteria struct {
	// normalized subcategory tokens picked from the tops/bottoms lists,
	// empty means no restriction
	CategoryTokens map[string]bool
	// single weather tag, explicit user pick or resolved from a live
	// lookup by the caller; empty means any weather
	Weather string
	// attached to generated outfits for display, never hard filters
	Occasion string
	Style    string

	ColorHarmony bool
}

var nonLetters = regexp.MustCompile(`[^a-z]+`)

// NormalizeToken lower-cases a label and strips everything that is not
// a letter, so "T-Shirts" and "tshirts" compare equal.
func NormalizeToken(s string) string {
	return nonLetters.ReplaceAllString(strings.ToLower(s), "")
}

// TokenSet normalizes a list of raw user-picked subcategory names into
// the token set used for filtering, dropping entries that normalize to
// nothing.
func TokenSet(raw []string) map[string]bool {
	tokens := make(map[string]bool, len(raw))
	for _, r := range raw {
		if t := NormalizeToken(r); t != "" {
			tokens[t] = true
		}
	}
	return tokens
}
