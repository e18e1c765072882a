package controller

import (
	"agenda-api/core/constants"
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/middleware"
	"agenda-api/core/session"
	"agenda-api/modules/auth/dto"
	"agenda-api/modules/auth/service"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	Sessions      *service.SessionManager
	Users         *service.UserService
	HomeURL       string
	RedirectDelay time.Duration
	SecureCookie  bool
}

func NewAuthController(sessions *service.SessionManager, users *service.UserService, homeURL string, redirectDelay time.Duration, secureCookie bool) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		Sessions:       sessions,
		Users:          users,
		HomeURL:        homeURL,
		RedirectDelay:  redirectDelay,
		SecureCookie:   secureCookie,
	}
}

// GoogleAuth redirects user to Google OAuth login page
// @Summary Sign in with Google
// @Tags Auth
// @Success 302
// @Router /public/auth/google [get]
func (ctrl *AuthController) GoogleAuth(c echo.Context) error {
	authURL, appErr := ctrl.Sessions.SignInURL(c.Request().Context())
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return c.Redirect(http.StatusFound, authURL)
}

// Callback finishes sign-in and renders a page that returns home
// @Summary OAuth callback
// @Tags Auth
// @Produce html
// @Param code query string false "Authorization code"
// @Param state query string false "CSRF state"
// @Param token query string false "Existing session token"
// @Success 200 {string} string
// @Router /auth/callback [get]
func (ctrl *AuthController) Callback(c echo.Context) error {
	ctx := c.Request().Context()

	if providerErr := c.QueryParam("error"); providerErr != "" {
		logger.Warn("AuthController:Callback:ProviderError", "error", providerErr, "description", c.QueryParam("error_description"))
		return ctrl.renderError(c, http.StatusBadRequest, "Google sign-in was cancelled or failed: "+providerErr)
	}

	var (
		resp   *dto.SessionResponse
		appErr *errors.AppError
	)
	if token := c.QueryParam("token"); token != "" {
		resp, appErr = ctrl.Sessions.ResumeSession(ctx, token)
	} else {
		resp, appErr = ctrl.Sessions.HandleCallback(ctx, c.QueryParam("code"), c.QueryParam("state"))
	}
	if appErr != nil {
		return ctrl.renderError(c, controller.StatusFor(appErr.Code), appErr.Message)
	}

	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    resp.AccessToken,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		HttpOnly: true,
		Secure:   ctrl.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	page, err := renderCallback(callbackView{
		Name:         resp.User.Name,
		HomeURL:      ctrl.HomeURL,
		DelaySeconds: int(ctrl.RedirectDelay / time.Second),
	})
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return c.HTML(http.StatusOK, page)
}

func (ctrl *AuthController) renderError(c echo.Context, status int, message string) error {
	page, err := renderCallback(callbackView{Error: message, HomeURL: ctrl.HomeURL})
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return c.HTML(status, page)
}

// Logout revokes the current session token
// @Summary Sign out
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} controller.SuccessResponse
// @Router /private/auth/logout [post]
func (ctrl *AuthController) Logout(c echo.Context) error {
	if appErr := ctrl.Sessions.SignOut(c.Request().Context(), middleware.RawToken(c)); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ctrl.SecureCookie,
	})
	return ctrl.SuccessResponse(c, nil, "Logout success")
}

// Me returns the signed-in user's profile and settings
// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /private/me [get]
func (ctrl *AuthController) Me(c echo.Context) error {
	profile, appErr := ctrl.Users.GetProfile(c.Request().Context(), session.FromContext(c))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, profile, "Success")
}

// UpdateSettings patches profile, notification settings and calendar preferences
// @Summary Update settings
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "Settings patch"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/me/settings [put]
func (ctrl *AuthController) UpdateSettings(c echo.Context) error {
	req := new(dto.UpdateSettingsRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	profile, appErr := ctrl.Sessions.UpdateSettings(c.Request().Context(), session.FromContext(c), req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, profile, "Settings updated")
}
