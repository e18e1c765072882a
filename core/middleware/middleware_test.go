package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"agenda-api/core/session"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	valid    string
	identity session.Identity
}

func (s stubResolver) ResolveIdentity(_ context.Context, token string) (session.Identity, bool) {
	if token != s.valid {
		return session.Identity{}, false
	}
	return s.identity, true
}

func run(t *testing.T, mw *Middleware, setup func(*http.Request)) (echo.Context, error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	setup(req)
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := mw.AuthMiddleware()(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	return c, err, called
}

func TestAuthMiddleware(t *testing.T) {
	identity := session.Identity{UserID: uuid.New(), Email: "ana@example.com"}
	mw := NewMiddleware(stubResolver{valid: "good", identity: identity})

	t.Run("missing token", func(t *testing.T) {
		_, err, called := run(t, mw, func(*http.Request) {})
		require.Error(t, err)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, err.(*echo.HTTPError).Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		_, err, called := run(t, mw, func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad") })
		require.Error(t, err)
		assert.False(t, called)
	})

	t.Run("bearer token", func(t *testing.T) {
		c, err, called := run(t, mw, func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") })
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, identity, session.FromContext(c))
		assert.Equal(t, "good", RawToken(c))
	})

	t.Run("session cookie", func(t *testing.T) {
		c, err, called := run(t, mw, func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "session", Value: "good"}) })
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, identity.UserID, session.FromContext(c).UserID)
	})
}
