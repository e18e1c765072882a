package service

import (
	"agenda-api/core/cache"
	"agenda-api/core/constants"
	"agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/session"
	"agenda-api/core/utils"
	"agenda-api/modules/auth/dto"
	"agenda-api/modules/auth/entity"
	"agenda-api/modules/auth/mapper"
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
)

// SessionManager owns sign-in, sign-out and the current-user lookup.
type SessionManager struct {
	users       *UserService
	cache       cache.Cache
	provider    IdentityProvider
	bus         *EventBus
	identityTTL time.Duration
}

func NewSessionManager(users *UserService, c cache.Cache, provider IdentityProvider, bus *EventBus, identityTTL time.Duration) *SessionManager {
	m := &SessionManager{
		users:       users,
		cache:       c,
		provider:    provider,
		bus:         bus,
		identityTTL: identityTTL,
	}
	bus.Subscribe(m.onAuthEvent)
	return m
}

// GetCurrentUser returns the signed-in user for token, creating the profile on
// first sight. Every failure is logged and reported as "not signed in".
func (m *SessionManager) GetCurrentUser(ctx context.Context, token string) *entity.User {
	if token == "" {
		return nil
	}

	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		logger.Debug("SessionManager:GetCurrentUser:InvalidToken", "error", err)
		return nil
	}

	blacklisted, err := m.cache.IsTokenBlacklisted(ctx, token)
	if err != nil {
		logger.Error("SessionManager:GetCurrentUser:IsTokenBlacklisted", "error", err)
		return nil
	}
	if blacklisted {
		return nil
	}

	user, err := m.lookupOrCreate(ctx, NewUser{ID: claims.UserID, Name: claims.Name, Email: claims.Email})
	if err != nil {
		logger.Error("SessionManager:GetCurrentUser:LookupOrCreate", "error", err, "user_id", claims.UserID)
		return nil
	}
	return user
}

// ResolveIdentity adapts GetCurrentUser for the auth middleware.
func (m *SessionManager) ResolveIdentity(ctx context.Context, token string) (session.Identity, bool) {
	user := m.GetCurrentUser(ctx, token)
	if user == nil {
		return session.Identity{}, false
	}
	return identityOf(user), true
}

// SignInURL starts the provider's redirect flow.
func (m *SessionManager) SignInURL(ctx context.Context) (string, *errors.AppError) {
	if m.provider == nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "Google OAuth configuration is missing", nil)
	}

	state := utils.GenerateRandomString(32)
	if err := m.cache.SaveOAuthState(ctx, state, constants.OAuthStateTTL); err != nil {
		logger.Error("SessionManager:SignInURL:SaveOAuthState", "error", err)
		return "", errors.Remote("failed to store state token", err)
	}

	return m.provider.AuthCodeURL(state), nil
}

// HandleCallback completes the provider flow and issues a session token.
func (m *SessionManager) HandleCallback(ctx context.Context, code string, state string) (*dto.SessionResponse, *errors.AppError) {
	if m.provider == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Google OAuth configuration is missing", nil)
	}
	if code == "" || state == "" {
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "authorization code and state are required", nil)
	}

	valid, err := m.cache.ConsumeOAuthState(ctx, state)
	if err != nil {
		logger.Error("SessionManager:HandleCallback:ConsumeOAuthState", "error", err)
		return nil, errors.Remote("failed to validate state token", err)
	}
	if !valid {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid or expired state token", nil)
	}

	profile, err := m.provider.Exchange(ctx, code)
	if err != nil {
		logger.Error("SessionManager:HandleCallback:Exchange", "error", err)
		return nil, errors.Remote("failed to complete sign-in", err)
	}
	if !profile.EmailVerified {
		logger.Warn("SessionManager:HandleCallback", "reason", "email not verified", "subject", profile.Subject)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Google account email is not verified", nil)
	}

	user, err := m.lookupOrCreate(ctx, NewUser{
		ID:              UserIDForSubject(profile.Subject),
		ProviderSubject: "google:" + profile.Subject,
		Name:            profile.Name,
		Email:           profile.Email,
	})
	if err != nil {
		logger.Error("SessionManager:HandleCallback:LookupOrCreate", "error", err)
		return nil, errors.Remote("failed to load profile", err)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Name, constants.ScopeTokenAccess)
	if err != nil {
		logger.Error("SessionManager:HandleCallback:GenerateToken", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}

	m.bus.Publish(ctx, AuthEvent{Type: EventSignedIn, UserID: user.ID, Email: user.Email, Name: user.Name})
	return m.sessionResponse(token, user), nil
}

// ResumeSession accepts a callback that already carries a session token.
func (m *SessionManager) ResumeSession(ctx context.Context, token string) (*dto.SessionResponse, *errors.AppError) {
	user := m.GetCurrentUser(ctx, token)
	if user == nil {
		return nil, errors.Unauthenticated()
	}

	m.bus.Publish(ctx, AuthEvent{Type: EventSignedIn, UserID: user.ID, Email: user.Email, Name: user.Name})
	return m.sessionResponse(token, user), nil
}

func (m *SessionManager) SignOut(ctx context.Context, token string) *errors.AppError {
	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return errors.Unauthenticated()
	}

	if err := m.cache.AddToTokenBlacklist(ctx, token, utils.TokenTTL(claims)); err != nil {
		logger.Error("SessionManager:SignOut:AddToTokenBlacklist", "error", err)
		return errors.Remote("failed to add token to blacklist", err)
	}

	m.bus.Publish(ctx, AuthEvent{Type: EventSignedOut, UserID: claims.UserID, Email: claims.Email, Name: claims.Name})
	return nil
}

// UpdateSettings patches the caller's profile and refreshes the identity cache.
func (m *SessionManager) UpdateSettings(ctx context.Context, identity session.Identity, req *dto.UpdateSettingsRequest) (*dto.UserResponse, *errors.AppError) {
	resp, appErr := m.users.UpdateSettings(ctx, identity, req)
	if appErr != nil {
		return nil, appErr
	}
	m.Forget(ctx, identity.UserID)
	return resp, nil
}

// Subscribe registers an auth-state listener and returns its unsubscribe function.
func (m *SessionManager) Subscribe(l Listener) func() {
	return m.bus.Subscribe(l)
}

func (m *SessionManager) lookupOrCreate(ctx context.Context, nu NewUser) (*entity.User, error) {
	key := identityKey(nu.ID)

	var cached entity.User
	err := m.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !stderrors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("SessionManager:IdentityCache:Get", "error", err)
	}

	user, err := m.users.LookupOrCreate(ctx, nu)
	if err != nil {
		return nil, err
	}
	m.remember(ctx, user)
	return user, nil
}

func (m *SessionManager) remember(ctx context.Context, user *entity.User) {
	if err := m.cache.Set(ctx, identityKey(user.ID), user, m.identityTTL); err != nil {
		logger.Warn("SessionManager:IdentityCache:Set", "error", err)
	}
}

// Forget drops the cached profile so the next lookup reads the store.
func (m *SessionManager) Forget(ctx context.Context, userID uuid.UUID) {
	if err := m.cache.Delete(ctx, identityKey(userID)); err != nil {
		logger.Warn("SessionManager:IdentityCache:Delete", "error", err)
	}
}

func (m *SessionManager) onAuthEvent(ctx context.Context, event AuthEvent) {
	switch event.Type {
	case EventSignedIn:
		user, err := m.users.LookupOrCreate(ctx, NewUser{ID: event.UserID, Name: event.Name, Email: event.Email})
		if err != nil {
			logger.Error("SessionManager:OnSignedIn", "error", err, "user_id", event.UserID)
			return
		}
		m.remember(ctx, user)
	case EventSignedOut:
		m.Forget(ctx, event.UserID)
	}
}

func (m *SessionManager) sessionResponse(token string, user *entity.User) *dto.SessionResponse {
	resp := &dto.SessionResponse{AccessToken: token, User: *mapper.ToUserResponse(user)}
	if claims, err := utils.ValidateAndParseToken(token); err == nil && claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	return resp
}

func identityKey(id uuid.UUID) string {
	return constants.RedisKeyIdentity + id.String()
}

func identityOf(user *entity.User) session.Identity {
	return session.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Timezone: user.Timezone,
	}
}
