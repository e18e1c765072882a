package auth

import (
	"agenda-api/core/cache"
	"agenda-api/core/config"
	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/core/middleware"
	"agenda-api/modules/auth/controller"
	"agenda-api/modules/auth/repository"
	"agenda-api/modules/auth/router"
	"agenda-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Module exposes the pieces other modules and the server depend on.
type Module struct {
	Sessions   *service.SessionManager
	Users      *service.UserService
	Events     *service.EventBus
	Middleware *middleware.Middleware
}

func Init(e *echo.Echo, db database.Database, c cache.Cache, cfg *config.Config) *Module {
	m := NewModule(db, c, cfg)

	ctrl := controller.NewAuthController(m.Sessions, m.Users, cfg.App.HomeURL, cfg.App.CallbackRedirectDelay, cfg.App.Env == "production")
	router.NewAuthRouter(ctrl).Setup(e, m.Middleware)

	return m
}

// NewModule wires the auth services without registering routes, for the worker process.
func NewModule(db database.Database, c cache.Cache, cfg *config.Config) *Module {
	repo := repository.NewUserRepository(db)
	users := service.NewUserService(repo, cfg.App.DefaultTimezone)
	bus := service.NewEventBus(c)

	var provider service.IdentityProvider
	if cfg.GoogleAPI.Configured() {
		provider = service.NewGoogleProvider(cfg.GoogleAPI)
	} else {
		logger.Warn("Auth:GoogleProvider:Skipped", "reason", "Google OAuth credentials not configured in env")
	}

	sessions := service.NewSessionManager(users, c, provider, bus, cfg.Cache.IdentityTTL)

	return &Module{
		Sessions:   sessions,
		Users:      users,
		Events:     bus,
		Middleware: middleware.NewMiddleware(sessions),
	}
}
