package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agenda-api/core/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
	assert.Len(t, GenerateRandomString(32), 32)
}

func TestToken_RoundTrip(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateToken(userID, "ana@example.com", "Ana", "access")
	require.NoError(t, err)

	claims, err := ValidateAndParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.Name)
	assert.Greater(t, TokenTTL(claims), time.Hour)
}

func TestToken_Rejected(t *testing.T) {
	_, err := ValidateAndParseToken("not-a-jwt")
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.KindUnauthenticated, appErr.Kind())
}

func TestGetTokenFromRequest(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def")
	token, err := GetTokenFromRequest(e.NewContext(req, httptest.NewRecorder()))
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "from-cookie"})
	token, err = GetTokenFromRequest(e.NewContext(req, httptest.NewRecorder()))
	require.NoError(t, err)
	assert.Equal(t, "from-cookie", token)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	_, err = GetTokenFromRequest(e.NewContext(req, httptest.NewRecorder()))
	assert.Error(t, err)
}

func TestDayBounds_UsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/El_Salvador")
	require.NoError(t, err)

	// 2024-03-06 03:00 UTC is still 2024-03-05 in El Salvador (UTC-6).
	now := time.Date(2024, 3, 6, 3, 0, 0, 0, time.UTC)
	start, end := DayBounds(now, loc)

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, loc), end)
	assert.True(t, Within(time.Date(2024, 3, 5, 23, 59, 0, 0, loc), start, end))
	assert.True(t, Within(time.Date(2024, 3, 5, 0, 30, 0, 0, loc), start, end))
	assert.False(t, Within(end, start, end))
}

func TestWeekBounds_MondayStart(t *testing.T) {
	// Sunday 2024-03-10
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	start, end := WeekBounds(now, time.UTC)

	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), end)

	// Monday itself starts the week
	start, _ = WeekBounds(time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), start)
}
