package middleware

import (
	"agenda-api/core/constants"
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/session"
	"agenda-api/core/utils"
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// IdentityResolver turns a session token into the signed-in identity.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (session.Identity, bool)
}

type Middleware struct {
	resolver IdentityResolver
}

func NewMiddleware(resolver IdentityResolver) *Middleware {
	return &Middleware{resolver: resolver}
}

// AuthMiddleware rejects requests without a live session and stores the
// caller's identity and raw token on the echo context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromRequest(c)
			if err != nil {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrMissingAuthorizationHeader, "authentication required")
			}

			identity, ok := m.resolver.ResolveIdentity(c.Request().Context(), token)
			if !ok {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "session is not valid")
			}

			session.Set(c, identity)
			c.Set(constants.ContextRawToken, token)
			return next(c)
		}
	}
}

// RawToken returns the token the request was authenticated with.
func RawToken(c echo.Context) string {
	token, _ := c.Get(constants.ContextRawToken).(string)
	return token
}
