package service

import (
	"agenda-api/core/cache"
	"agenda-api/modules/event/entity"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[uuid.UUID]entity.Event
	lists  int
	writes int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uuid.UUID]entity.Event)}
}

func (f *fakeEventRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	out := []entity.Event{}
	for _, e := range f.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, userID uuid.UUID, id uuid.UUID) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok || e.UserID != userID {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeEventRepo) Create(_ context.Context, event *entity.Event) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	created := *event
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.events[created.ID] = created
	return &created, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *entity.Event) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.events[event.ID]
	if !ok || existing.UserID != event.UserID {
		return nil, nil
	}
	f.writes++
	updated := *event
	updated.UpdatedAt = time.Now()
	f.events[event.ID] = updated
	return &updated, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, userID uuid.UUID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if e, ok := f.events[id]; ok && e.UserID == userID {
		delete(f.events, id)
	}
	return nil
}

type fakeStore struct {
	objects map[string][]byte
	fail    bool
}

func (f *fakeStore) Put(_ context.Context, key string, _ string, body []byte) error {
	if f.fail {
		return errors.New("access denied")
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[key] = body
	return nil
}

func (f *fakeStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	return "https://bucket.example.com/" + key + "?X-Amz-Expires=" + ttl.String(), nil
}

func newTestCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	cfg := cache.DefaultCacheConfig()
	cfg.Addr = mr.Addr()
	c := cache.NewRedisCache(cfg)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}
