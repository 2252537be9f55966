package models

import "github.com/lib/pq"

// OutfitGeneration is one persisted outfit-generation request: the
// criteria the user picked plus the combinations the engine produced.
type OutfitGeneration struct {
	JsonModel
	UserAccountID uint        `json:"-"`
	UserAccount   UserAccount `json:"user_account"`

	// criteria snapshot
	Weather        string         `json:"weather"`
	Occasion       string         `json:"occasion"`
	Style          string         `json:"style"`
	Location       string         `json:"location"`
	CategoryTokens pq.StringArray `gorm:"type:text[]" json:"category_tokens"`
	ColorHarmony   bool           `json:"color_harmony"`

	OutfitCount int      `json:"outfit_count"`
	Status      string   `json:"status"`   // completed, failed
	Duration    *float64 `json:"duration"` // in seconds

	Results []OutfitGenerationResult `gorm:"foreignKey:OutfitGenerationID" json:"results"`
}

// OutfitGenerationResult is one generated combination inside a run.
type OutfitGenerationResult struct {
	JsonModel
	OutfitGenerationID uint `json:"-"`

	TopItemID       uint          `json:"top_item_id"`
	TopItem         WardrobeItem  `json:"top_item"`
	BottomItemID    uint          `json:"bottom_item_id"`
	BottomItem      WardrobeItem  `json:"bottom_item"`
	ShoesItemID     *uint         `json:"shoes_item_id"`
	ShoesItem       *WardrobeItem `json:"shoes_item"`
	AccessoryItemID *uint         `json:"accessory_item_id"`
	AccessoryItem   *WardrobeItem `json:"accessory_item"`

	Weather           string `json:"weather"`
	Occasion          string `json:"occasion"`
	ColorHarmonyScore *int   `json:"color_harmony_score"`
	Confidence        int    `json:"confidence"`
}
