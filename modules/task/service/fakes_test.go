package service

import (
	"agenda-api/core/cache"
	"agenda-api/modules/task/entity"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

type fakeTaskRepo struct {
	mu      sync.Mutex
	tasks   map[uuid.UUID]entity.Task
	clock   time.Time
	lists   int
	writes  int
	failAll bool
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks: make(map[uuid.UUID]entity.Task),
		clock: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeTaskRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeTaskRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("connection refused")
	}
	f.lists++
	out := []entity.Task{}
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, userID uuid.UUID, id uuid.UUID) (*entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, task *entity.Task) (*entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("connection refused")
	}
	f.writes++
	created := *task
	created.ID = uuid.New()
	created.CreatedAt = f.tick()
	created.UpdatedAt = created.CreatedAt
	f.tasks[created.ID] = created
	return &created, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *entity.Task) (*entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return nil, nil
	}
	f.writes++
	updated := *task
	updated.UpdatedAt = f.tick()
	f.tasks[task.ID] = updated
	return &updated, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, userID uuid.UUID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if t, ok := f.tasks[id]; ok && t.UserID == userID {
		delete(f.tasks, id)
	}
	return nil
}

type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []entity.Task
}

func (f *fakeScheduler) Schedule(_ context.Context, task entity.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, task)
	return nil
}

func newTestCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	cfg := cache.DefaultCacheConfig()
	cfg.Addr = mr.Addr()
	c := cache.NewRedisCache(cfg)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}
