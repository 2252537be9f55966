package models

import (
	"regexp"

	"github.com/go-playground/validator"
)

type Weather string

const (
	WeatherSunny  Weather = "Sunny"
	WeatherRainy  Weather = "Rainy"
	WeatherCold   Weather = "Cold"
	WeatherWarm   Weather = "Warm"
	WeatherCloudy Weather = "Cloudy"
)

func (w *Weather) Scan(value interface{}) error {
	*w = Weather(value.(string))
	return nil
}

func (w Weather) Value() (string, error) {
	return string(w), nil
}

// ValidateWeather accepts the five supported tags, case-insensitively.
// Wardrobe items themselves may carry free text; only API inputs that
// claim to be a weather tag go through this.
func ValidateWeather(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	matched, _ := regexp.MatchString("(?i)^sunny|rainy|cold|warm|cloudy$", value)
	return matched
}

func ValidateWeatherRaw(value string) bool {
	matched, _ := regexp.MatchString("(?i)^sunny|rainy|cold|warm|cloudy$", value)
	return matched
}
