package dbhelper

import (
	"log"

	"fitsyapi/models"

	"gorm.io/gorm"
)

func SetupCleaner(db *gorm.DB) func() {
	return func() {
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.OutfitGenerationResult{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.OutfitGeneration{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.WardrobeItem{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.UserAccount{})
	}
}

func Migrate(db *gorm.DB, model interface{}) {
	err := db.AutoMigrate(model)
	if err != nil {
		log.Printf("Error while migrating %s", model)
		log.Fatal(err)
	}
}
