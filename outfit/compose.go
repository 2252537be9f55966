package outfit

import (
	"fmt"
	"strings"

	"fitsyapi/models"
)

const (
	// every manually composed outfit carries the same fixed confidence,
	// this is a deterministic generator, not a learned ranker
	ManualOutfitConfidence = 75

	// cap per generation call
	MaxOutfits = 6
)

// GeneratedOutfit is one candidate combination produced by the
// composer. Transient: persistence and display belong to the caller.
type GeneratedOutfit struct {
	ID          string
	Top         models.WardrobeItem
	Bottom      models.WardrobeItem
	Shoes       *models.WardrobeItem
	Accessories []models.WardrobeItem

	Weather  string
	Occasion string

	// set only when color harmony scoring was requested
	ColorHarmonyScore *int
	Confidence        int
}

// MissingCategoryError signals that the top and/or bottom candidate
// pool came up empty after filtering. Shoe or accessory absence is not
// an error: an outfit requires at least a top and a bottom.
type MissingCategoryError struct {
	Sides []models.Bucket
}

func (e *MissingCategoryError) Error() string {
	names := make([]string, 0, len(e.Sides))
	for _, s := range e.Sides {
		names = append(names, string(s))
	}
	return fmt.Sprintf("no eligible wardrobe items for: %s", strings.Join(names, ", "))
}

// Missing reports whether the given side is among the empty ones.
func (e *MissingCategoryError) Missing(side models.Bucket) bool {
	for _, s := range e.Sides {
		if s == side {
			return true
		}
	}
	return false
}

// GenerateOutfits filters the wardrobe snapshot per bucket and composes
// ranked outfit combinations. Pure: same snapshot and criteria always
// produce the same output.
func GenerateOutfits(wardrobe []models.WardrobeItem, criteria SelectionCriteria) ([]GeneratedOutfit, error) {
	tops := FilterEligible(wardrobe, models.BucketTop, criteria)
	bottoms := FilterEligible(wardrobe, models.BucketBottom, criteria)
	shoesPool := FilterEligible(wardrobe, models.BucketShoes, criteria)
	accessoriesPool := FilterEligible(wardrobe, models.BucketAccessories, criteria)
	return Compose(tops, bottoms, shoesPool, accessoriesPool, criteria)
}

// Compose cross-products tops and bottoms row-major, capped at
// min(MaxOutfits, |tops|*|bottoms|), pairing one shoe and one accessory
// per combination via deterministic round-robin.
func Compose(tops, bottoms, shoesPool, accessoriesPool []models.WardrobeItem, criteria SelectionCriteria) ([]GeneratedOutfit, error) {
	var missing []models.Bucket
	if len(tops) == 0 {
		missing = append(missing, models.BucketTop)
	}
	if len(bottoms) == 0 {
		missing = append(missing, models.BucketBottom)
	}
	if len(missing) > 0 {
		return nil, &MissingCategoryError{Sides: missing}
	}

	maxOutfits := len(tops) * len(bottoms)
	if maxOutfits > MaxOutfits {
		maxOutfits = MaxOutfits
	}

	outfits := make([]GeneratedOutfit, 0, maxOutfits)
	counter := 0
	for i := range tops {
		for j := range bottoms {
			if counter >= maxOutfits {
				break
			}
			counter++
			generated := GeneratedOutfit{
				ID:         fmt.Sprintf("manual-outfit-%d", counter),
				Top:        tops[i],
				Bottom:     bottoms[j],
				Weather:    displayWeather(criteria.Weather),
				Occasion:   resolveOccasion(tops[i], bottoms[j], criteria),
				Confidence: ManualOutfitConfidence,
			}
			if shoe := roundRobinPick(shoesPool, i, j); shoe != nil {
				generated.Shoes = shoe
			}
			if accessory := roundRobinPick(accessoriesPool, i, j); accessory != nil {
				generated.Accessories = []models.WardrobeItem{*accessory}
			}
			if criteria.ColorHarmony {
				score := scoreOutfitColors(generated)
				generated.ColorHarmonyScore = &score
			}
			outfits = append(outfits, generated)
		}
		if counter >= maxOutfits {
			break
		}
	}

	if criteria.ColorHarmony {
		outfits = rankByHarmony(outfits)
	}
	return outfits, nil
}

// roundRobinPick selects (i+j) mod |pool| from a non-empty pool,
// falling back to pool[0] should the index ever land out of range.
// Certain pool sizes attach the same item to every combination.
func roundRobinPick(pool []models.WardrobeItem, i, j int) *models.WardrobeItem {
	if len(pool) == 0 {
		return nil
	}
	idx := (i + j) % len(pool)
	if idx < 0 || idx >= len(pool) {
		idx = 0
	}
	pick := pool[idx]
	return &pick
}

func displayWeather(weather string) string {
	if weather == "" {
		return "Moderate"
	}
	return weather
}

func resolveOccasion(top, bottom models.WardrobeItem, criteria SelectionCriteria) string {
	if criteria.Occasion != "" {
		return criteria.Occasion
	}
	if hasFormalLabel(top) || hasFormalLabel(bottom) {
		return "Work/Formal"
	}
	return "Casual"
}

func hasFormalLabel(item models.WardrobeItem) bool {
	for _, label := range ItemLabels(item) {
		if strings.EqualFold(strings.TrimSpace(label), "formals") {
			return true
		}
	}
	return false
}
