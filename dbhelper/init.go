package dbhelper

import (
	"fmt"
	"os"
	"time"

	"fitsyapi/models"
	"fitsyapi/services"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupDB() *gorm.DB {
	db, err := gorm.Open(postgres.Open(
		fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s",
			services.GetEnv("DB_USERNAME", ""),
			services.GetEnv("DB_PASSWORD", ""),
			services.GetEnv("DB_HOST", ""),
			services.GetEnv("DB_PORT", ""),
			services.GetEnv("DB_NAME", ""),
		),
	), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(300)
	sqlDB.SetConnMaxLifetime(time.Minute * 5)
	db.Logger.LogMode(logger.LogLevel(logger.Info))

	db.Raw("CREATE EXTENSION if not exists pgcrypto;")
	Migrate(db, &models.UserAccount{})
	Migrate(db, &models.WardrobeItem{})
	Migrate(db, &models.OutfitGeneration{})
	Migrate(db, &models.OutfitGenerationResult{})

	return db
}

func SetupTestDB() *gorm.DB {
	os.Setenv("DB_USERNAME", "fitsy")
	os.Setenv("DB_PASSWORD", "fitsy")
	os.Setenv("DB_HOST", "localhost")
	os.Setenv("DB_NAME", "fitsy")
	os.Setenv("DB_PORT", "5432")
	os.Setenv("JWT_SECRET", "test-secret")
	return SetupDB()
}
