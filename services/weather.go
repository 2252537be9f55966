package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fitsyapi/models"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// current conditions barely move inside this window
const weatherCacheExpiration = 15 * time.Minute

type WeatherServiceProvider interface {
	// CurrentWeather resolves a free-text location into one of the
	// supported weather tags: Sunny, Rainy, Cold, Warm, Cloudy.
	CurrentWeather(ctx context.Context, location string) (string, error)
}

type weatherAPIResponse struct {
	Condition string  `json:"condition"`
	TempC     float64 `json:"temp_c"`
}

// WeatherService looks up current conditions against a configurable
// HTTP endpoint and caches resolved tags per location, so repeated
// outfit generations for the same place skip the network round trip.
type WeatherService struct {
	cache *cache.LoadableCache[string]
}

func NewWeatherService() (*WeatherService, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache)

	loadFunction := func(ctx context.Context, key any) (string, []store.Option, error) {
		location, ok := key.(string)
		if !ok {
			return "", nil, fmt.Errorf("invalid key type provided to weather cache: expected string, got %T", key)
		}
		tag, err := fetchCurrentWeather(ctx, location)
		return tag, []store.Option{store.WithExpiration(weatherCacheExpiration)}, err
	}

	loadableCache := cache.NewLoadable[string](
		loadFunction,
		cache.New[string](ristrettoStore),
	)
	return &WeatherService{cache: loadableCache}, nil
}

func (s *WeatherService) CurrentWeather(ctx context.Context, location string) (string, error) {
	location = strings.ToLower(strings.TrimSpace(location))
	if location == "" {
		return "", nil
	}
	return s.cache.Get(ctx, location)
}

func fetchCurrentWeather(ctx context.Context, location string) (string, error) {
	base := GetEnv("WEATHER_API_URL", "")
	if base == "" {
		return "", fmt.Errorf("WEATHER_API_URL is not configured")
	}
	endpoint := fmt.Sprintf("%s/current?query=%s", base, url.QueryEscape(location))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", err
	}
	if apiKey := GetEnv("WEATHER_API_KEY", ""); apiKey != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather lookup for %q failed with status %d", location, resp.StatusCode)
	}

	var payload weatherAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	return MapWeatherCondition(payload.Condition, payload.TempC), nil
}

// MapWeatherCondition folds a provider condition string and temperature
// onto the five supported tags. Precipitation wins over sky cover,
// temperature only decides when the condition itself is inconclusive.
func MapWeatherCondition(condition string, tempC float64) string {
	c := strings.ToLower(condition)
	switch {
	case containsAny(c, "rain", "drizzle", "shower", "storm", "thunder"):
		return string(models.WeatherRainy)
	case containsAny(c, "snow", "sleet", "ice", "blizzard", "freez"):
		return string(models.WeatherCold)
	case containsAny(c, "cloud", "overcast", "fog", "mist", "haze"):
		return string(models.WeatherCloudy)
	case containsAny(c, "sun", "clear"):
		if tempC >= 24 {
			return string(models.WeatherWarm)
		}
		return string(models.WeatherSunny)
	case tempC < 10:
		return string(models.WeatherCold)
	case tempC >= 24:
		return string(models.WeatherWarm)
	default:
		return string(models.WeatherCloudy)
	}
}

func containsAny(s string, fragments ...string) bool {
	for _, fragment := range fragments {
		if strings.Contains(s, fragment) {
			return true
		}
	}
	return false
}
