package reminder

import (
	"agenda-api/core/config"
	"agenda-api/core/constants"
	"agenda-api/core/logger"
	"context"

	"github.com/hibiken/asynq"
)

func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}
}

func NewServeMux(h *Handler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(constants.TaskTypeTaskReminder, h.HandleTaskReminder)
	return mux
}

func NewServer(redis config.RedisConfig, worker config.WorkerConfig) *asynq.Server {
	concurrency := worker.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	return asynq.NewServer(RedisOpt(redis), asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{constants.QueueDefault: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Worker:TaskFailed", "type", task.Type(), "error", err)
		}),
	})
}
