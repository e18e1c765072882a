package utils

import (
	"agenda-api/core/config"
	"agenda-api/core/constants"
	"agenda-api/core/errors"
	stderrors "errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultTokenSecret = "change-me"
	defaultTokenTTL    = 24 * time.Hour
	defaultIssuer      = "agenda-api"
)

type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Scope  string    `json:"scope"`
	jwt.RegisteredClaims
}

func tokenSettings() (secret []byte, ttl time.Duration, issuer string) {
	secret, ttl, issuer = []byte(defaultTokenSecret), defaultTokenTTL, defaultIssuer
	if cfg, ok := config.GetSafe(); ok {
		if cfg.JWT.Secret != "" {
			secret = []byte(cfg.JWT.Secret)
		}
		if cfg.JWT.AccessTTL > 0 {
			ttl = cfg.JWT.AccessTTL
		}
		if cfg.JWT.Issuer != "" {
			issuer = cfg.JWT.Issuer
		}
	}
	return secret, ttl, issuer
}

func GenerateToken(userID uuid.UUID, email string, name string, scope string) (string, error) {
	secret, ttl, issuer := tokenSettings()
	now := time.Now()

	claims := &TokenClaims{
		UserID: userID,
		Email:  email,
		Name:   name,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        GenerateID(),
			Subject:   userID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ValidateAndParseToken(token string) (*TokenClaims, error) {
	secret, _, _ := tokenSettings()

	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token expired", err)
		}
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token", err)
	}
	if !parsed.Valid || claims.UserID == uuid.Nil {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token", nil)
	}

	return claims, nil
}

// TokenTTL reports how long a parsed token stays valid.
func TokenTTL(claims *TokenClaims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	return time.Until(claims.ExpiresAt.Time)
}

func GetTokenFromHeader(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", errors.NewAppError(errors.ErrMissingAuthorizationHeader, "missing authorization header", nil)
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid authorization header", nil)
	}

	return strings.TrimSpace(parts[1]), nil
}

// GetTokenFromRequest reads the bearer header and falls back to the session cookie.
func GetTokenFromRequest(c echo.Context) (string, error) {
	token, err := GetTokenFromHeader(c)
	if err == nil {
		return token, nil
	}

	cookie, cookieErr := c.Cookie(constants.SessionCookieName)
	if cookieErr != nil || cookie.Value == "" {
		return "", err
	}
	return cookie.Value, nil
}
