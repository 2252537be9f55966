package outfit

import (
	"testing"

	"fitsyapi/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wardrobeItem(name, primary string) models.WardrobeItem {
	return models.WardrobeItem{Name: name, PrimaryCategory: primary}
}

func TestFilterEligibleByBucket(t *testing.T) {
	wardrobe := []models.WardrobeItem{
		wardrobeItem("white tee", "T-shirt"),
		wardrobeItem("blue jeans", "Jeans"),
		wardrobeItem("runners", "Sneakers"),
	}
	tops := FilterEligible(wardrobe, models.BucketTop, SelectionCriteria{})
	require.Len(t, tops, 1)
	assert.Equal(t, "white tee", tops[0].Name)
}

func TestFilterWeatherPassThrough(t *testing.T) {
	untagged := wardrobeItem("all-weather tee", "T-shirt")
	rainy := wardrobeItem("rain jacket", "Jackets")
	rainy.Weather = "Rainy"
	sunny := wardrobeItem("linen shirt", "Shirts")
	sunny.Weather = "Sunny"

	result := FilterEligible([]models.WardrobeItem{untagged, rainy, sunny}, models.BucketTop, SelectionCriteria{Weather: "Rainy"})
	require.Len(t, result, 2)
	assert.Equal(t, "all-weather tee", result[0].Name)
	assert.Equal(t, "rain jacket", result[1].Name)
}

func TestFilterWeatherCaseInsensitive(t *testing.T) {
	item := wardrobeItem("parka", "Coats")
	item.Weather = "cold"
	result := FilterEligible([]models.WardrobeItem{item}, models.BucketTop, SelectionCriteria{Weather: "Cold"})
	assert.Len(t, result, 1)
}

func TestFilterCategoryTokens(t *testing.T) {
	jeans := wardrobeItem("blue jeans", "Jeans")
	joggers := wardrobeItem("grey joggers", "Joggers")
	tokens := TokenSet([]string{"Jeans", "Shorts"})

	result := FilterEligible([]models.WardrobeItem{jeans, joggers}, models.BucketBottom, SelectionCriteria{CategoryTokens: tokens})
	require.Len(t, result, 1)
	assert.Equal(t, "blue jeans", result[0].Name)
}

func TestFilterCategoryTokensMatchAdditionalCategories(t *testing.T) {
	item := wardrobeItem("smart blazer", "Jackets")
	item.AdditionalCategories = pq.StringArray{"Formals"}
	tokens := TokenSet([]string{"formals"})

	result := FilterEligible([]models.WardrobeItem{item}, models.BucketTop, SelectionCriteria{CategoryTokens: tokens})
	assert.Len(t, result, 1)
}

func TestFilterCategoryTokensNeverRestrictShoesOrAccessories(t *testing.T) {
	shoes := wardrobeItem("runners", "Sneakers")
	bag := wardrobeItem("tote", "Bags")
	criteria := SelectionCriteria{CategoryTokens: TokenSet([]string{"jeans"})}

	assert.Len(t, FilterEligible([]models.WardrobeItem{shoes}, models.BucketShoes, criteria), 1)
	assert.Len(t, FilterEligible([]models.WardrobeItem{bag}, models.BucketAccessories, criteria), 1)
}

func TestFilterPreservesSnapshotOrder(t *testing.T) {
	wardrobe := []models.WardrobeItem{
		wardrobeItem("first", "T-shirt"),
		wardrobeItem("skip", "Jeans"),
		wardrobeItem("second", "Blouse"),
		wardrobeItem("third", "Sweaters"),
	}
	result := FilterEligible(wardrobe, models.BucketTop, SelectionCriteria{})
	require.Len(t, result, 3)
	assert.Equal(t, "first", result[0].Name)
	assert.Equal(t, "second", result[1].Name)
	assert.Equal(t, "third", result[2].Name)
}

func TestTokenSetNormalization(t *testing.T) {
	tokens := TokenSet([]string{"T-Shirts", " Jeans ", "--", ""})
	assert.True(t, tokens["tshirts"])
	assert.True(t, tokens["jeans"])
	assert.Len(t, tokens, 2)
}
