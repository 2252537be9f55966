package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"fitsyapi/models"
	"fitsyapi/outfit"
	"fitsyapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GenerateOutfitsIn struct {
	CategoryTokens []string `json:"category_tokens" validate:"omitempty,max=20,dive,max=100"`
	Weather        string   `json:"weather" validate:"omitempty,weathertag"`
	Location       string   `json:"location" validate:"omitempty,max=120"`
	Occasion       string   `json:"occasion" validate:"omitempty,max=100"`
	Style          string   `json:"style" validate:"omitempty,max=100"`
	ColorHarmony   bool     `json:"color_harmony"`
	// accept partial results: when the category selection leaves a side
	// empty, retry once with the selection relaxed instead of failing
	ProceedAnyway bool `json:"proceed_anyway"`
}

type OutfitItemSummary struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	PrimaryCategory string  `json:"primary_category"`
	Color           string  `json:"color"`
	ImageURL        *string `json:"image_url"`
}

type GeneratedOutfitOut struct {
	ID                string              `json:"id"`
	Top               OutfitItemSummary   `json:"top"`
	Bottom            OutfitItemSummary   `json:"bottom"`
	Shoes             *OutfitItemSummary  `json:"shoes,omitempty"`
	Accessories       []OutfitItemSummary `json:"accessories"`
	Weather           string              `json:"weather"`
	Occasion          string              `json:"occasion"`
	ColorHarmonyScore *int                `json:"color_harmony_score,omitempty"`
	Confidence        int                 `json:"confidence"`
}

type GenerateOutfitsResponse struct {
	GenerationID uint                 `json:"generation_id"`
	Weather      string               `json:"weather"`
	Outfits      []GeneratedOutfitOut `json:"outfits"`
}

type OutfitGenerationListResponse struct {
	Generations []models.OutfitGeneration `json:"generations"`
}

type OutfitsController struct {
	Weather services.WeatherServiceProvider
}

func (controller *OutfitsController) OutfitRoutes(g *echo.Group) {
	g.POST("/generate", controller.GenerateOutfits)
	g.GET("/history", controller.ListGenerations)
	g.GET("/history/:generationId", controller.GetGeneration)
}

func (controller *OutfitsController) GenerateOutfits(c echo.Context) error {
	var req GenerateOutfitsIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	if user.EnforcedDailyGenerationLimit != nil {
		var dailyGenerationCount int64
		today := time.Now().UTC().Format("2006-01-02")
		if err := db.Model(&models.OutfitGeneration{}).Where("user_account_id = ? AND DATE(created_at) = ?", user.ID, today).Count(&dailyGenerationCount).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get generation data"})
		}
		if dailyGenerationCount >= int64(*user.EnforcedDailyGenerationLimit) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": fmt.Sprintf("You have reached the limit of %v daily generations. Please wait for the next day.", *user.EnforcedDailyGenerationLimit)})
		}
	}

	// explicit weather pick wins over the live lookup
	weather := req.Weather
	if weather == "" && req.Location != "" && controller.Weather != nil {
		resolved, err := controller.Weather.CurrentWeather(c.Request().Context(), req.Location)
		if err != nil {
			// weather is an enhancement, generation proceeds without it
			log.Printf("[User %v] Weather lookup failed for %q: %v", user.ID, req.Location, err)
			sentry.CaptureException(err)
		} else {
			weather = resolved
		}
	}

	var wardrobe []models.WardrobeItem
	if err := db.Where("owner_id = ? AND status = ?", user.ID, "in_closet").Order("id asc").Find(&wardrobe).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe items"})
	}

	criteria := outfit.SelectionCriteria{
		CategoryTokens: outfit.TokenSet(req.CategoryTokens),
		Weather:        weather,
		Occasion:       req.Occasion,
		Style:          req.Style,
		ColorHarmony:   req.ColorHarmony,
	}

	started := time.Now()
	outfits, err := outfit.GenerateOutfits(wardrobe, criteria)
	var missing *outfit.MissingCategoryError
	if errors.As(err, &missing) && req.ProceedAnyway && len(criteria.CategoryTokens) > 0 {
		// the user accepted partial results: relax our own category
		// restriction and ask the engine again, its filtering is never
		// loosened from inside
		criteria.CategoryTokens = nil
		outfits, err = outfit.GenerateOutfits(wardrobe, criteria)
	}
	if err != nil {
		if errors.As(err, &missing) {
			sides := make([]string, 0, len(missing.Sides))
			for _, side := range missing.Sides {
				sides = append(sides, string(side))
			}
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"error":   "Not enough wardrobe items to build an outfit",
				"missing": sides,
			})
		}
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate outfits, please try again"})
	}
	duration := time.Since(started).Seconds()

	generation := models.OutfitGeneration{
		UserAccountID:  user.ID,
		Weather:        weather,
		Occasion:       req.Occasion,
		Style:          req.Style,
		Location:       req.Location,
		CategoryTokens: pq.StringArray(req.CategoryTokens),
		ColorHarmony:   req.ColorHarmony,
		OutfitCount:    len(outfits),
		Status:         "completed",
		Duration:       &duration,
	}
	for _, o := range outfits {
		result := models.OutfitGenerationResult{
			TopItemID:         o.Top.ID,
			BottomItemID:      o.Bottom.ID,
			Weather:           o.Weather,
			Occasion:          o.Occasion,
			ColorHarmonyScore: o.ColorHarmonyScore,
			Confidence:        o.Confidence,
		}
		if o.Shoes != nil {
			result.ShoesItemID = UIntPointer(o.Shoes.ID)
		}
		if len(o.Accessories) > 0 {
			result.AccessoryItemID = UIntPointer(o.Accessories[0].ID)
		}
		generation.Results = append(generation.Results, result)
	}
	if err := db.Create(&generation).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save generation history"})
	}

	response := GenerateOutfitsResponse{
		GenerationID: generation.ID,
		Weather:      displayWeatherTag(weather),
		Outfits:      make([]GeneratedOutfitOut, 0, len(outfits)),
	}
	for _, o := range outfits {
		out := GeneratedOutfitOut{
			ID:                o.ID,
			Top:               outfitItemSummary(o.Top),
			Bottom:            outfitItemSummary(o.Bottom),
			Accessories:       []OutfitItemSummary{},
			Weather:           o.Weather,
			Occasion:          o.Occasion,
			ColorHarmonyScore: o.ColorHarmonyScore,
			Confidence:        o.Confidence,
		}
		if o.Shoes != nil {
			shoes := outfitItemSummary(*o.Shoes)
			out.Shoes = &shoes
		}
		for _, accessory := range o.Accessories {
			out.Accessories = append(out.Accessories, outfitItemSummary(accessory))
		}
		response.Outfits = append(response.Outfits, out)
	}
	return c.JSON(http.StatusCreated, response)
}

func outfitItemSummary(item models.WardrobeItem) OutfitItemSummary {
	return OutfitItemSummary{
		ID:              item.ID,
		Name:            item.Name,
		PrimaryCategory: item.PrimaryCategory,
		Color:           item.Color,
		ImageURL:        item.ImageURL,
	}
}

func displayWeatherTag(weather string) string {
	if weather == "" {
		return "Moderate"
	}
	return weather
}

func (controller *OutfitsController) ListGenerations(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var generations []models.OutfitGeneration
	if err := db.Where("user_account_id = ?", user.ID).Order("id desc").Limit(50).Find(&generations).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch generation history"})
	}
	return c.JSON(http.StatusOK, OutfitGenerationListResponse{Generations: generations})
}

func (controller *OutfitsController) GetGeneration(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var generationId uint
	if err := echo.PathParamsBinder(c).Uint("generationId", &generationId).BindError(); err != nil {
		return echo.ErrBadRequest
	}

	var generation models.OutfitGeneration
	result := db.Preload("Results.TopItem").
		Preload("Results.BottomItem").
		Preload("Results.ShoesItem").
		Preload("Results.AccessoryItem").
		Where("id = ? AND user_account_id = ?", generationId, user.ID).
		Take(&generation)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Generation not found"})
	}
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch generation"})
	}
	return c.JSON(http.StatusOK, generation)
}
