package main

import (
	"context"
	"log"
	"os"
	"time"

	"fitsyapi/controllers"
	"fitsyapi/dbhelper"
	"fitsyapi/services"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              os.Getenv("SENTRY_DSN"),
		Environment:      services.GetEnv("ENV", "local"),
		Release:          "fitsyapi@1.0.0",
		Debug:            false,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Recover()
	defer sentry.Flush(2 * time.Second)

	db := dbhelper.SetupDB()

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")})
	asynqInspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")})

	bucketName := services.GetEnv("R2_BUCKET_NAME", "")
	awsService := &services.AWSService{}
	if err := awsService.InitPresignClient(context.Background()); err != nil {
		log.Fatal("Failed to initialize AWS provider: S3")
	}
	urlCache, err := services.NewURLCacheService(awsService, bucketName)
	if err != nil {
		log.Fatal("Failed to initialize URL cache service")
	}
	weatherService, err := services.NewWeatherService()
	if err != nil {
		log.Fatal("Failed to initialize weather service")
	}

	e := controllers.SetupServer(
		db, awsService, weatherService,
		asynqClient, asynqInspector, urlCache,
	)

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(3)))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	e.Logger.Fatal(e.Start(":8083"))
}
