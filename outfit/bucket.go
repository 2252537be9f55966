package outfit

import (
	"slices"
	"strings"

	"fitsyapi/models"
)

// Keyword tables for resolving free-text garment categories into buckets.
// Evaluated in a fixed priority order, first match wins, so labels that
// contain keywords of several buckets resolve deterministically.
var bucketKeywords = []struct {
	bucket   models.Bucket
	exact    []string
	contains []string
}{
	{
		bucket:   models.BucketAccessories,
		exact:    []string{"accessory", "accessories"},
		contains: []string{"bag", "belt", "scarf", "hat", "cap", "sunglass", "sunglasses", "jewel", "jewelry", "umbrella"},
	},
	{
		bucket:   models.BucketShoes,
		exact:    []string{"shoe", "shoes", "footwear"},
		contains: []string{"sneaker", "heel", "boot", "sandal", "flat", "loafer"},
	},
	{
		bucket:   models.BucketBottom,
		exact:    []string{"bottom", "bottoms"},
		contains: []string{"jeans", "trousers", "shorts", "skirt", "legging", "jogger", "pants", "slacks"},
	},
	{
		bucket:   models.BucketTop,
		exact:    []string{"top", "tops"},
		contains: []string{"tshirt", "shirt", "camisole", "blouse", "tee", "tank", "jacket", "sweater", "hoodie", "coat", "outerwear", "sweatshirt", "cardigan", "formal"},
	},
}

// NormalizeCategory resolves a free-text category label into exactly one
// bucket. Matching is case-insensitive substring only; empty labels and
// labels with no recognized keyword resolve to BucketUnknown.
func NormalizeCategory(label string) models.Bucket {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return models.BucketUnknown
	}
	for _, kw := range bucketKeywords {
		if slices.Contains(kw.exact, l) {
			return kw.bucket
		}
		for _, fragment := range kw.contains {
			if strings.Contains(l, fragment) {
				return kw.bucket
			}
		}
	}
	return models.BucketUnknown
}

// ItemLabels returns the full label set of an item: primary category
// followed by every additional category.
func ItemLabels(item models.WardrobeItem) []string {
	labels := make([]string, 0, 1+len(item.AdditionalCategories))
	labels = append(labels, item.PrimaryCategory)
	labels = append(labels, item.AdditionalCategories...)
	return labels
}

// ItemBuckets returns the union of buckets over all labels of the item.
// A garment tagged both "Jackets" and "Bags" is eligible for either
// bucket, which is intentional for multi-purpose garments.
func ItemBuckets(item models.WardrobeItem) map[models.Bucket]bool {
	buckets := make(map[models.Bucket]bool)
	for _, label := range ItemLabels(item) {
		if b := NormalizeCategory(label); b != models.BucketUnknown {
			buckets[b] = true
		}
	}
	return buckets
}
