package models

import "time"

type UserAccount struct {
	JsonModel
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Banned   bool   `gorm:"default:false" json:"-"`
	LastIp   string `json:"-"`
	//"STARTED_AUTH", "FINISHED_AUTH"
	Status   string   `json:"-"`
	Platform Platform `sql:"type:ENUM('ios', 'android', 'web')" json:"platform"`

	Subscription        Subscription `json:"subscription"`
	ExpirationDate      *time.Time   `json:"-"`
	ConfirmedDeleteDate *time.Time   `json:"-"`

	// limits enforced for the free tier, overridable per user
	EnforcedDailyItemLimit       *int32 `json:"enforced_daily_item_limit"`
	EnforcedDailyGenerationLimit *int32 `json:"enforced_daily_generation_limit"`

	AvatarURL string `json:"avatar_url"`
}
