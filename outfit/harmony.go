package outfit

import (
	"sort"
	"strings"
)

// Outfits scoring at or above this are considered harmonious.
const harmoniousThreshold = 40

var neutralColors = map[string]bool{
	"black": true,
	"white": true,
	"gray":  true,
	"grey":  true,
	"beige": true,
	"tan":   true,
	"navy":  true,
	"brown": true,
}

// Unordered complementary pairs, matched case-insensitively in both
// directions and via substring containment. Containment is loose on
// purpose: "dark red" pairs with "green" the same way "red" does.
var complementaryPairs = [][2]string{
	{"red", "green"},
	{"blue", "orange"},
	{"yellow", "purple"},
	{"black", "white"},
	{"brown", "beige"},
	{"navy", "tan"},
	{"pink", "mint"},
	{"coral", "teal"},
	{"lavender", "yellow"},
	{"red", "navy"},
	{"blue", "brown"},
	{"green", "burgundy"},
	{"orange", "blue"},
	{"purple", "yellow"},
	{"pink", "green"},
	{"red", "white"},
	{"black", "red"},
	{"white", "navy"},
	{"beige", "brown"},
	{"gray", "pink"},
	{"navy", "white"},
}

// ColorHarmonyScore estimates how well a set of garment colors combine,
// as an integer in [0,100]. Base 50; every unordered pair of collected
// colors adds +20 when complementary, +15 when identical, +10 when
// either side is neutral, and subtracts 5 otherwise.
func ColorHarmonyScore(colors []string) int {
	score := 50
	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			a := strings.ToLower(strings.TrimSpace(colors[i]))
			b := strings.ToLower(strings.TrimSpace(colors[j]))
			switch {
			case isComplementary(a, b):
				score += 20
			case a == b:
				score += 15
			case neutralColors[a] || neutralColors[b]:
				score += 10
			default:
				score -= 5
			}
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func isComplementary(a, b string) bool {
	for _, pair := range complementaryPairs {
		if colorMatches(a, pair[0]) && colorMatches(b, pair[1]) {
			return true
		}
		if colorMatches(a, pair[1]) && colorMatches(b, pair[0]) {
			return true
		}
	}
	return false
}

func colorMatches(color, reference string) bool {
	return color == reference ||
		strings.Contains(color, reference) ||
		strings.Contains(reference, color)
}

func scoreOutfitColors(o GeneratedOutfit) int {
	colors := make([]string, 0, 4)
	for _, c := range []string{o.Top.Color, o.Bottom.Color} {
		if c != "" {
			colors = append(colors, c)
		}
	}
	if o.Shoes != nil && o.Shoes.Color != "" {
		colors = append(colors, o.Shoes.Color)
	}
	for _, accessory := range o.Accessories {
		if accessory.Color != "" {
			colors = append(colors, accessory.Color)
		}
	}
	return ColorHarmonyScore(colors)
}

// rankByHarmony keeps harmonious outfits sorted by descending score,
// truncated to MaxOutfits. When nothing clears the threshold it
// degrades gracefully: all outfits are ranked instead of returning an
// empty list.
func rankByHarmony(outfits []GeneratedOutfit) []GeneratedOutfit {
	harmonious := make([]GeneratedOutfit, 0, len(outfits))
	for _, o := range outfits {
		if o.ColorHarmonyScore != nil && *o.ColorHarmonyScore >= harmoniousThreshold {
			harmonious = append(harmonious, o)
		}
	}
	ranked := outfits
	if len(harmonious) > 0 {
		ranked = harmonious
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scoreOf(ranked[i]) > scoreOf(ranked[j])
	})
	if len(ranked) > MaxOutfits {
		ranked = ranked[:MaxOutfits]
	}
	return ranked
}

func scoreOf(o GeneratedOutfit) int {
	if o.ColorHarmonyScore == nil {
		return 0
	}
	return *o.ColorHarmonyScore
}
