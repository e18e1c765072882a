// Package server assembles the modules into the HTTP API and the reminder worker.
package server

import (
	"agenda-api/core/cache"
	"agenda-api/core/config"
	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/auth"
	"agenda-api/modules/contact"
	"agenda-api/modules/event"
	"agenda-api/modules/meeting"
	"agenda-api/modules/notification"
	"agenda-api/modules/reminder"
	"agenda-api/modules/task"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

func databaseConfig(cfg *config.Config) database.DatabaseConfig {
	return database.DatabaseConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
}

func cacheConfig(cfg *config.Config) *cache.CacheConfig {
	cc := cache.DefaultCacheConfig()
	cc.Addr = cfg.Redis.Addr
	cc.Password = cfg.Redis.Password
	cc.DB = cfg.Redis.DB
	if cfg.Redis.PoolSize > 0 {
		cc.PoolSize = cfg.Redis.PoolSize
	}
	return cc
}

// NewEcho builds the echo instance with the shared middleware stack.
func NewEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			if v.Error != nil {
				logger.Error("HTTP:Request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "request_id", v.RequestID, "error", v.Error)
				return nil
			}
			logger.Info("HTTP:Request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "request_id", v.RequestID)
			return nil
		},
	}))

	return e
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config) error {
	db, err := database.InitDB(databaseConfig(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	redisCache := cache.NewRedisCache(cacheConfig(cfg))
	defer redisCache.Close()

	queue := asynq.NewClient(reminder.RedisOpt(cfg.Redis))
	defer queue.Close()

	e := NewEcho(cfg)
	e.GET("/health", func(c echo.Context) error {
		if err := db.SQLx().PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
		}
		if err := redisCache.Health(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "redis unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	authModule := auth.Init(e, db, redisCache, cfg)
	mw := authModule.Middleware

	notifications := notification.Init(e.Group("/api/v1/private"), db, mw)
	task.Init(e, db, redisCache, cfg, mw, reminder.NewScheduler(queue))
	event.Init(e, db, redisCache, cfg, mw)
	contact.Init(e, db, redisCache, cfg, mw)
	meeting.Init(e, db, redisCache, cfg, mw, authModule.Users, notifications)

	listenCtx, stopListener := context.WithCancel(ctx)
	defer stopListener()
	go func() {
		if err := authModule.Events.Listen(listenCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Server:AuthListener", "error", err)
		}
	}()

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server:Start", "addr", addr, "env", cfg.App.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Server:Shutdown")
	stopListener()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
