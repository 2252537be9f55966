package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapWeatherCondition(t *testing.T) {
	cases := []struct {
		condition string
		tempC     float64
		expected  string
	}{
		{"Light rain", 18, "Rainy"},
		{"Thunderstorm", 25, "Rainy"},
		{"Snow showers", -2, "Rainy"}, // precipitation wording wins
		{"Heavy snow", -2, "Cold"},
		{"Partly cloudy", 20, "Cloudy"},
		{"Fog", 8, "Cloudy"},
		{"Sunny", 18, "Sunny"},
		{"Clear", 30, "Warm"},
		{"", 5, "Cold"},
		{"", 28, "Warm"},
		{"", 15, "Cloudy"},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, MapWeatherCondition(c.condition, c.tempC), "condition %q temp %v", c.condition, c.tempC)
	}
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "Cargo Pants", DisplayLabel("cargo pants"))
	assert.Equal(t, "Cargo Pants", DisplayLabel(" CARGO PANTS "))
	assert.Equal(t, "", DisplayLabel("  "))
}
