package service

import (
	"agenda-api/core/cache"
	"agenda-api/core/constants"
	"agenda-api/core/logger"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
)

type AuthEvent struct {
	Type   EventType `json:"type"`
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	At     time.Time `json:"at"`
}

type Listener func(ctx context.Context, event AuthEvent)

// EventBus fans auth-state changes out to every server instance over Redis
// pub/sub. When nobody is subscribed on the channel it delivers locally.
type EventBus struct {
	cache     cache.Cache
	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

func NewEventBus(c cache.Cache) *EventBus {
	return &EventBus{cache: c, listeners: make(map[int]Listener)}
}

// Subscribe registers l and returns a function that removes it.
func (b *EventBus) Subscribe(l Listener) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = l
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

func (b *EventBus) Publish(ctx context.Context, event AuthEvent) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	if b.cache != nil {
		payload, err := json.Marshal(event)
		if err == nil {
			receivers, pubErr := b.cache.Publish(ctx, constants.RedisChannelAuthEvents, payload)
			if pubErr == nil && receivers > 0 {
				return
			}
			if pubErr != nil {
				logger.Warn("EventBus:Publish", "error", pubErr, "type", event.Type)
			}
		}
	}

	b.dispatch(ctx, event)
}

// Listen relays events from the Redis channel to local listeners until ctx is done.
func (b *EventBus) Listen(ctx context.Context) error {
	messages, closeFn, err := b.cache.Subscribe(ctx, constants.RedisChannelAuthEvents)
	if err != nil {
		return err
	}
	logger.Info("EventBus:Listen:Started", "channel", constants.RedisChannelAuthEvents)

	go func() {
		<-ctx.Done()
		if err := closeFn(); err != nil {
			logger.Warn("EventBus:Listen:Close", "error", err)
		}
	}()

	for payload := range messages {
		var event AuthEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			logger.Warn("EventBus:Listen:Decode", "error", err)
			continue
		}
		b.dispatch(context.WithoutCancel(ctx), event)
	}
	return nil
}

func (b *EventBus) dispatch(ctx context.Context, event AuthEvent) {
	b.mu.RLock()
	snapshot := make([]Listener, 0, len(b.listeners))
	for _, l := range b.listeners {
		snapshot = append(snapshot, l)
	}
	b.mu.RUnlock()

	for _, l := range snapshot {
		l(ctx, event)
	}
}
