package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
	ContextIdentity  = "identity"
	ContextRawToken  = "raw_token"
)

// Token scopes
const (
	ScopeTokenAccess = "access"
)

const (
	DefaultRequestTimeout = 30 * time.Second
	RedisOperationTimeout = 3 * time.Second
	OAuthStateTTL         = 10 * time.Minute
	SessionCookieName     = "session"
	DefaultUserName       = "Usuario"
)

// Redis keys and channels
const (
	RedisKeyTokenBlacklist = "blacklist:"
	RedisKeyOAuthState     = "oauth_state:"
	RedisKeyIdentity       = "identity:"
	RedisTagPrefix         = "tag:"
	RedisTagVersionPrefix  = "tagver:"
	RedisChannelAuthEvents = "auth:events"
)

// Cache tag namespaces, one per entity type
const (
	CacheEntityTasks    = "tasks"
	CacheEntityEvents   = "events"
	CacheEntityMeetings = "meetings"
	CacheEntityContacts = "contacts"
)

// Background job types
const (
	TaskTypeTaskReminder = "task:reminder"
	QueueDefault         = "default"
)

// Pagination
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

// Meeting requests
const (
	MaxMeetingMinutes   = 24 * 60
	MaxSuggestionWindow = 31 * 24 * time.Hour
)
