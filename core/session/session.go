// Package session carries the authenticated caller through the request.
// Services receive an Identity explicitly and never reach for ambient state.
package session

import (
	"agenda-api/core/constants"
	"agenda-api/core/errors"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Identity struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Timezone string    `json:"timezone"`
}

func (i Identity) IsZero() bool {
	return i.UserID == uuid.Nil
}

// Require returns an Unauthenticated error for a zero identity.
func Require(i Identity) *errors.AppError {
	if i.IsZero() {
		return errors.Unauthenticated()
	}
	return nil
}

// Location resolves the caller's timezone, falling back to fallback and then UTC.
func (i Identity) Location(fallback string) *time.Location {
	for _, name := range []string{i.Timezone, fallback} {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}

func Set(c echo.Context, id Identity) {
	c.Set(constants.ContextIdentity, id)
}

func FromContext(c echo.Context) Identity {
	id, ok := c.Get(constants.ContextIdentity).(Identity)
	if !ok {
		return Identity{}
	}
	return id
}
