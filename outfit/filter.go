package outfit

import (
	"strings"

	"fitsyapi/models"
)

// FilterEligible returns the subset of items eligible for the given
// bucket under the criteria. The filter is stable: output preserves the
// order of the wardrobe snapshot.
func FilterEligible(items []models.WardrobeItem, bucket models.Bucket, criteria SelectionCriteria) []models.WardrobeItem {
	result := make([]models.WardrobeItem, 0, len(items))
	for _, item := range items {
		if !ItemBuckets(item)[bucket] {
			continue
		}
		if !weatherCompatible(item, criteria.Weather) {
			continue
		}
		if !tokenCompatible(item, bucket, criteria.CategoryTokens) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// Items with no weather tag are weather-agnostic and always pass.
func weatherCompatible(item models.WardrobeItem, weather string) bool {
	if weather == "" {
		return true
	}
	return item.Weather == "" || strings.EqualFold(item.Weather, weather)
}

// Category tokens restrict only tops and bottoms; shoes and accessories
// are always drawn from the full weather-filtered pool.
func tokenCompatible(item models.WardrobeItem, bucket models.Bucket, tokens map[string]bool) bool {
	if bucket != models.BucketTop && bucket != models.BucketBottom {
		return true
	}
	if len(tokens) == 0 {
		return true
	}
	for _, label := range ItemLabels(item) {
		if tokens[NormalizeToken(label)] {
			return true
		}
	}
	return false
}
