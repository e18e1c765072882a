package server

import (
	"agenda-api/core/cache"
	"agenda-api/core/config"
	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/auth"
	"agenda-api/modules/notification"
	"agenda-api/modules/reminder"
	taskRepository "agenda-api/modules/task/repository"
	"context"
)

// RunWorker processes reminder jobs until ctx is cancelled.
func RunWorker(ctx context.Context, cfg *config.Config) error {
	db, err := database.InitDB(databaseConfig(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	redisCache := cache.NewRedisCache(cacheConfig(cfg))
	defer redisCache.Close()

	users := auth.NewModule(db, redisCache, cfg).Users
	handler := reminder.NewHandler(taskRepository.NewTaskRepository(db), users, notification.NewService(db))

	srv := reminder.NewServer(cfg.Redis, cfg.Worker)
	if err := srv.Start(reminder.NewServeMux(handler)); err != nil {
		return err
	}
	logger.Info("Worker:Start", "concurrency", cfg.Worker.Concurrency)

	<-ctx.Done()

	logger.Info("Worker:Shutdown")
	srv.Shutdown()
	return nil
}

// Migrate applies the embedded migrations. A negative steps value rolls back.
func Migrate(cfg *config.Config, steps int) error {
	db, err := database.InitDB(databaseConfig(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	if steps < 0 {
		return db.MigrateDown(-steps)
	}
	return db.MigrateUp()
}
