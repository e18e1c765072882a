package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{AuthController: authController}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	e.GET("/auth/callback", r.AuthController.Callback)

	v1 := e.Group("/api/v1")

	publicRoutes := v1.Group("/public/auth")
	publicRoutes.GET("/google", r.AuthController.GoogleAuth)

	privateRoutes := v1.Group("/private")
	privateRoutes.POST("/auth/logout", r.AuthController.Logout, mw.AuthMiddleware())

	meRoutes := privateRoutes.Group("/me", mw.AuthMiddleware())
	meRoutes.GET("", r.AuthController.Me)
	meRoutes.GET("/settings", r.AuthController.Me)
	meRoutes.PUT("/settings", r.AuthController.UpdateSettings)
}
