package controllers

import (
	"net/http"
	"os"

	"fitsyapi/models"
	"fitsyapi/services"

	"github.com/go-playground/validator"
	"github.com/hibiken/asynq"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func SetupServer(
	db *gorm.DB,
	awsService services.AWSServiceProvider,
	weatherService services.WeatherServiceProvider,
	asynqClient *asynq.Client,
	asynqInspector *asynq.Inspector,
	urlCache services.URLCacheServiceProvider,
) *echo.Echo {
	e := echo.New()

	v := validator.New()
	v.RegisterValidation("platform", models.ValidatePlatform)
	v.RegisterValidation("weathertag", models.ValidateWeather)
	v.RegisterValidation("bucket", models.ValidateBucket)
	e.Validator = &CustomValidator{validator: v}

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("__db", db)
			c.Set("__asynqclient", asynqClient)
			c.Set("__asynqinspector", asynqInspector)
			return next(c)
		}
	})

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	wardrobeController := WardrobeController{AWSService: awsService, URLCache: urlCache}
	wardrobeGroup := e.Group("/wardrobe", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))), UserMiddleware)
	wardrobeController.WardrobeRoutes(wardrobeGroup)

	outfitsController := OutfitsController{Weather: weatherService}
	outfitsGroup := e.Group("/outfits", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))), UserMiddleware)
	outfitsController.OutfitRoutes(outfitsGroup)

	return e
}
