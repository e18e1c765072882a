package service

import (
	"agenda-api/core/constants"
	"agenda-api/core/errors"
	"agenda-api/core/session"
	"agenda-api/core/utils"
	"agenda-api/modules/auth/dto"
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SessionManagerSuite struct {
	suite.Suite
	repo     *fakeUserRepo
	provider *fakeProvider
	bus      *EventBus
	manager  *SessionManager
	ctx      context.Context
}

func (s *SessionManagerSuite) SetupTest() {
	c, _ := newTestCache(s.T())
	s.repo = newFakeUserRepo()
	s.provider = &fakeProvider{profile: &ProviderProfile{Subject: "1234567890", Email: "ana@example.com", Name: "Ana", EmailVerified: true}}
	s.bus = NewEventBus(c)
	s.manager = NewSessionManager(NewUserService(s.repo, "America/El_Salvador"), c, s.provider, s.bus, time.Minute)
	s.ctx = context.Background()
}

func TestSessionManagerSuite(t *testing.T) {
	suite.Run(t, new(SessionManagerSuite))
}

func (s *SessionManagerSuite) signIn() *dto.SessionResponse {
	authURL, appErr := s.manager.SignInURL(s.ctx)
	s.Require().Nil(appErr)

	parsed, err := url.Parse(authURL)
	s.Require().NoError(err)

	resp, appErr := s.manager.HandleCallback(s.ctx, "code", parsed.Query().Get("state"))
	s.Require().Nil(appErr)
	return resp
}

func (s *SessionManagerSuite) TestGetCurrentUser_CreatesProfileWithDefaults() {
	userID := uuid.New()
	token, err := utils.GenerateToken(userID, "new@example.com", "", constants.ScopeTokenAccess)
	s.Require().NoError(err)

	user := s.manager.GetCurrentUser(s.ctx, token)
	s.Require().NotNil(user)

	s.Equal(userID, user.ID)
	s.Equal("Usuario", user.Name)
	s.Equal("America/El_Salvador", user.Timezone)
	s.True(user.NotificationSettings.TaskDeadlines)
	s.True(user.NotificationSettings.MeetingRequests)
	s.False(user.NotificationSettings.PushNotifications)
	s.Equal("week", user.CalendarPreferences.DefaultView)
	s.Equal("09:00", user.CalendarPreferences.WorkingHours.Start)

	// second call is served without creating again
	s.Require().NotNil(s.manager.GetCurrentUser(s.ctx, token))
	s.Equal(1, s.repo.creates)
}

func (s *SessionManagerSuite) TestGetCurrentUser_InvalidTokenIsNil() {
	s.Nil(s.manager.GetCurrentUser(s.ctx, ""))
	s.Nil(s.manager.GetCurrentUser(s.ctx, "garbage"))
}

func (s *SessionManagerSuite) TestHandleCallback_DeterministicIdentity() {
	resp := s.signIn()

	s.Equal(UserIDForSubject("1234567890"), resp.User.ID)
	s.Equal("Ana", resp.User.Name)
	s.NotEmpty(resp.AccessToken)
	s.True(resp.ExpiresAt.After(time.Now()))

	again := s.signIn()
	s.Equal(resp.User.ID, again.User.ID)
	s.Equal(1, s.repo.creates)
}

func (s *SessionManagerSuite) TestHandleCallback_StateIsSingleUse() {
	authURL, appErr := s.manager.SignInURL(s.ctx)
	s.Require().Nil(appErr)
	parsed, _ := url.Parse(authURL)
	state := parsed.Query().Get("state")

	_, appErr = s.manager.HandleCallback(s.ctx, "code", state)
	s.Require().Nil(appErr)

	_, appErr = s.manager.HandleCallback(s.ctx, "code", state)
	s.Require().NotNil(appErr)
	s.Equal(errors.KindUnauthenticated, appErr.Kind())
}

func (s *SessionManagerSuite) TestHandleCallback_RejectsUnverifiedEmail() {
	s.provider.profile.EmailVerified = false

	authURL, appErr := s.manager.SignInURL(s.ctx)
	s.Require().Nil(appErr)
	parsed, _ := url.Parse(authURL)

	_, appErr = s.manager.HandleCallback(s.ctx, "code", parsed.Query().Get("state"))
	s.Require().NotNil(appErr)
	s.Equal(errors.KindUnauthenticated, appErr.Kind())
	s.Equal(0, s.repo.creates)
}

func (s *SessionManagerSuite) TestHandleCallback_MissingParams() {
	_, appErr := s.manager.HandleCallback(s.ctx, "", "")
	s.Require().NotNil(appErr)
	s.Equal(errors.KindValidationFailure, appErr.Kind())
}

func (s *SessionManagerSuite) TestSignOut_RevokesToken() {
	resp := s.signIn()
	s.Require().NotNil(s.manager.GetCurrentUser(s.ctx, resp.AccessToken))

	s.Require().Nil(s.manager.SignOut(s.ctx, resp.AccessToken))
	s.Nil(s.manager.GetCurrentUser(s.ctx, resp.AccessToken))

	_, ok := s.manager.ResolveIdentity(s.ctx, resp.AccessToken)
	s.False(ok)
}

func (s *SessionManagerSuite) TestResumeSession() {
	resp := s.signIn()

	resumed, appErr := s.manager.ResumeSession(s.ctx, resp.AccessToken)
	s.Require().Nil(appErr)
	s.Equal(resp.User.ID, resumed.User.ID)

	_, appErr = s.manager.ResumeSession(s.ctx, "garbage")
	s.Require().NotNil(appErr)
	s.Equal(errors.KindUnauthenticated, appErr.Kind())
}

func (s *SessionManagerSuite) TestSubscribe_ReceivesSignInAndSignOut() {
	var mu sync.Mutex
	var seen []EventType
	unsubscribe := s.manager.Subscribe(func(_ context.Context, e AuthEvent) {
		mu.Lock()
		seen = append(seen, e.Type)
		mu.Unlock()
	})

	resp := s.signIn()
	s.Require().Nil(s.manager.SignOut(s.ctx, resp.AccessToken))

	unsubscribe()
	s.signIn()

	mu.Lock()
	defer mu.Unlock()
	s.Equal([]EventType{EventSignedIn, EventSignedOut}, seen)
}

func (s *SessionManagerSuite) TestUpdateSettings_RefreshesIdentity() {
	resp := s.signIn()
	identity, ok := s.manager.ResolveIdentity(s.ctx, resp.AccessToken)
	s.Require().True(ok)

	tz := "Europe/Madrid"
	_, appErr := s.manager.UpdateSettings(s.ctx, identity, &dto.UpdateSettingsRequest{Timezone: &tz})
	s.Require().Nil(appErr)

	identity, ok = s.manager.ResolveIdentity(s.ctx, resp.AccessToken)
	s.Require().True(ok)
	s.Equal("Europe/Madrid", identity.Timezone)
}

func (s *SessionManagerSuite) TestUpdateSettings_Validation() {
	resp := s.signIn()
	identity, _ := s.manager.ResolveIdentity(s.ctx, resp.AccessToken)

	bad := "Mars/Olympus"
	_, appErr := s.manager.UpdateSettings(s.ctx, identity, &dto.UpdateSettingsRequest{Timezone: &bad})
	s.Require().NotNil(appErr)
	s.Equal(errors.KindValidationFailure, appErr.Kind())

	_, appErr = s.manager.UpdateSettings(s.ctx, session.Identity{}, &dto.UpdateSettingsRequest{})
	s.Require().NotNil(appErr)
	s.Equal(errors.KindUnauthenticated, appErr.Kind())
}

func TestSignInURL_WithoutProvider(t *testing.T) {
	c, _ := newTestCache(t)
	m := NewSessionManager(NewUserService(newFakeUserRepo(), "UTC"), c, nil, NewEventBus(c), time.Minute)

	_, appErr := m.SignInURL(context.Background())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.KindRemoteFailure, appErr.Kind())
}
