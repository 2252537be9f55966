package main

import (
	"context"
	"log"
	"os"

	"fitsyapi/dbhelper"
	"fitsyapi/tasks"

	"github.com/hibiken/asynq"
)

func runScheduler() {
	scheduler := asynq.NewScheduler(asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")}, &asynq.SchedulerOpts{
		LogLevel: asynq.InfoLevel,
	})

	scheduled := []struct {
		cron string
		task *asynq.Task
		desc string
	}{
		{
			cron: "0 3 * * *", // nightly
			task: tasks.NewPruneTemporaryItemsTask(),
			desc: "Prune stale temporary wardrobe items",
		},
	}

	for _, t := range scheduled {
		entryID, err := scheduler.Register(t.cron, t.task, asynq.Queue("wardrobe"))
		if err != nil {
			log.Fatalf("Failed to register task '%s': %v", t.desc, err)
		}
		log.Printf("Registered task '%s' with ID: %s, cron: %s", t.desc, entryID, t.cron)
	}

	log.Println("Starting scheduler...")
	if err := scheduler.Run(); err != nil {
		log.Fatalf("Scheduler failed: %v", err)
	}
}

func main() {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")},
		asynq.Config{Concurrency: 10, Queues: map[string]int{
			"wardrobe": 7,
		}},
	)

	db := dbhelper.SetupDB()

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeItemCategorization, func(ctx context.Context, t *asynq.Task) error {
		return tasks.HandleItemCategorizationTask(ctx, t, db)
	})
	mux.HandleFunc(tasks.TypePruneTemporaryItems, func(ctx context.Context, t *asynq.Task) error {
		return tasks.HandlePruneTemporaryItemsTask(ctx, t, db)
	})

	go runScheduler()
	if err := srv.Run(mux); err != nil {
		log.Fatal(err)
	}
}
