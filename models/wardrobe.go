package models

import "github.com/lib/pq"

type WardrobeItem struct {
	JsonModel
	Name        string      `json:"name"`
	Description *string     `gorm:"type:text" json:"description"`
	Owner       UserAccount `json:"-"`
	OwnerID     uint        `json:"-"`

	// main classification as entered by the user or the scan pipeline,
	// free text e.g. "T-shirt", "Jeans", "Bags"
	PrimaryCategory string `json:"primary_category"`
	// secondary classifications for multi-purpose garments,
	// e.g. tagged both "Jackets" and "Formals"
	AdditionalCategories pq.StringArray `gorm:"type:text[]" json:"additional_categories"`

	// bucket resolved by the categorization worker, "unknown" until processed
	ResolvedBucket Bucket `json:"resolved_bucket"`

	Weather  string `json:"weather"` // Sunny, Rainy, Cold, Warm, Cloudy or empty (any)
	Color    string `json:"color"`
	Occasion string `json:"occasion"`
	Style    string `json:"style"`

	Status              string  `json:"status"`            // temporary, in_closet
	ImageStatus         string  `json:"image_status"`      // draft, uploaded
	ProcessingStatus    string  `json:"processing_status"` // idle, pending, completed, failed
	ProcessRetryTimes   int     `json:"process_retry_times"`
	ProcessErrorMessage *string `json:"process_error_message"`
	ImageURL            *string `json:"image_url"`
}
