package outfit

import (
	"testing"

	"fitsyapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorHarmonyScorePairs(t *testing.T) {
	cases := []struct {
		name     string
		colors   []string
		expected int
	}{
		{"no colors", nil, 50},
		{"single color", []string{"red"}, 50},
		{"complementary", []string{"red", "green"}, 70},
		{"complementary compound substring", []string{"dark red", "green"}, 70},
		{"complementary reversed", []string{"green", "red"}, 70},
		{"identical", []string{"red", "Red"}, 65},
		{"neutral member", []string{"black", "mint"}, 60},
		{"clash", []string{"magenta", "cyan"}, 45},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, ColorHarmonyScore(c.colors))
		})
	}
}

func TestColorHarmonyScoreClampsLow(t *testing.T) {
	// 28 mutually clashing pairs drive the raw score far below zero
	colors := []string{"magenta", "cyan", "olive", "maroon", "chartreuse", "puce", "ochre", "indigo"}
	assert.Equal(t, 0, ColorHarmonyScore(colors))
}

func TestColorHarmonyScoreClampsHigh(t *testing.T) {
	assert.Equal(t, 100, ColorHarmonyScore([]string{"black", "white", "navy", "beige"}))
}

func TestComposeHarmonyFilterKeepsHarmonious(t *testing.T) {
	red := models.WardrobeItem{Name: "red shirt", PrimaryCategory: "Shirts", Color: "red"}
	magenta := models.WardrobeItem{Name: "magenta shirt", PrimaryCategory: "Shirts", Color: "magenta"}
	green := models.WardrobeItem{Name: "green shorts", PrimaryCategory: "Shorts", Color: "green"}
	olive := models.WardrobeItem{Name: "olive boots", PrimaryCategory: "Boots", Color: "olive"}

	outfits, err := Compose(
		[]models.WardrobeItem{red, magenta},
		[]models.WardrobeItem{green},
		[]models.WardrobeItem{olive},
		nil,
		SelectionCriteria{ColorHarmony: true},
	)
	require.NoError(t, err)
	// red/green/olive scores 60, magenta/green/olive scores 35 and is dropped
	require.Len(t, outfits, 1)
	assert.Equal(t, "red shirt", outfits[0].Top.Name)
	require.NotNil(t, outfits[0].ColorHarmonyScore)
	assert.Equal(t, 60, *outfits[0].ColorHarmonyScore)
}

func TestComposeHarmonyGracefulDegradation(t *testing.T) {
	magenta := models.WardrobeItem{Name: "magenta shirt", PrimaryCategory: "Shirts", Color: "magenta"}
	cyan := models.WardrobeItem{Name: "cyan shorts", PrimaryCategory: "Shorts", Color: "cyan"}
	olive := models.WardrobeItem{Name: "olive boots", PrimaryCategory: "Boots", Color: "olive"}

	outfits, err := Compose(
		[]models.WardrobeItem{magenta},
		[]models.WardrobeItem{cyan},
		[]models.WardrobeItem{olive},
		nil,
		SelectionCriteria{ColorHarmony: true},
	)
	require.NoError(t, err)
	// nothing clears the threshold, but the harmony filter never turns
	// existing outfits into an empty result
	require.Len(t, outfits, 1)
	require.NotNil(t, outfits[0].ColorHarmonyScore)
	assert.Equal(t, 35, *outfits[0].ColorHarmonyScore)
}

func TestComposeHarmonySortsDescending(t *testing.T) {
	red := models.WardrobeItem{Name: "red shirt", PrimaryCategory: "Shirts", Color: "red"}
	white := models.WardrobeItem{Name: "white shirt", PrimaryCategory: "Shirts", Color: "white"}
	green := models.WardrobeItem{Name: "green shorts", PrimaryCategory: "Shorts", Color: "green"}

	outfits, err := Compose(
		[]models.WardrobeItem{white, red},
		[]models.WardrobeItem{green},
		nil,
		nil,
		SelectionCriteria{ColorHarmony: true},
	)
	require.NoError(t, err)
	require.Len(t, outfits, 2)
	// red/green is complementary (70), white/green only neutral (60)
	assert.Equal(t, "red shirt", outfits[0].Top.Name)
	assert.Equal(t, "white shirt", outfits[1].Top.Name)
	assert.GreaterOrEqual(t, *outfits[0].ColorHarmonyScore, *outfits[1].ColorHarmonyScore)
}

func TestComposeNoHarmonyScoreWhenDisabled(t *testing.T) {
	red := models.WardrobeItem{Name: "red shirt", PrimaryCategory: "Shirts", Color: "red"}
	green := models.WardrobeItem{Name: "green shorts", PrimaryCategory: "Shorts", Color: "green"}

	outfits, err := Compose([]models.WardrobeItem{red}, []models.WardrobeItem{green}, nil, nil, SelectionCriteria{})
	require.NoError(t, err)
	assert.Nil(t, outfits[0].ColorHarmonyScore)
}
