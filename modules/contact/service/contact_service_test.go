package service

import (
	"agenda-api/core/cache"
	"agenda-api/core/errors"
	"agenda-api/core/session"
	"agenda-api/modules/contact/dto"
	"agenda-api/modules/contact/entity"
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContactRepo struct {
	mu       sync.Mutex
	contacts map[uuid.UUID]entity.Contact
	lists    int
	writes   int
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: make(map[uuid.UUID]entity.Contact)}
}

func (f *fakeContactRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	out := []entity.Contact{}
	for _, c := range f.contacts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeContactRepo) GetByID(_ context.Context, userID uuid.UUID, id uuid.UUID) (*entity.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.contacts[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeContactRepo) Create(_ context.Context, contact *entity.Contact) (*entity.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	created := *contact
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.contacts[created.ID] = created
	return &created, nil
}

func (f *fakeContactRepo) Update(_ context.Context, contact *entity.Contact) (*entity.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.contacts[contact.ID]
	if !ok || existing.UserID != contact.UserID {
		return nil, nil
	}
	f.writes++
	f.contacts[contact.ID] = *contact
	updated := *contact
	return &updated, nil
}

func (f *fakeContactRepo) Delete(_ context.Context, userID uuid.UUID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if c, ok := f.contacts[id]; ok && c.UserID == userID {
		delete(f.contacts, id)
	}
	return nil
}

func ptr(s string) *string { return &s }

func newService(t *testing.T) (*ContactService, *fakeContactRepo, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	cfg := cache.DefaultCacheConfig()
	cfg.Addr = mr.Addr()
	c := cache.NewRedisCache(cfg)
	t.Cleanup(func() { _ = c.Close() })

	repo := newFakeContactRepo()
	return NewContactService(repo, c, time.Minute), repo, mr
}

func seed(t *testing.T, svc *ContactService, me session.Identity) {
	for _, req := range []dto.CreateContactRequest{
		{Name: "Carla", Email: ptr("carla@acme.com"), Company: ptr("Acme")},
		{Name: "Ana", Email: ptr("ana@globex.com"), Phone: ptr("+503 5555"), Company: ptr("Globex")},
		{Name: "Bruno", Company: ptr("acme ")},
		{Name: "Diego Macana", Phone: ptr("+503 7777")},
	} {
		_, appErr := svc.Create(context.Background(), me, &req)
		require.Nil(t, appErr)
	}
}

func TestContactService_ListOrderedByName(t *testing.T) {
	svc, _, _ := newService(t)
	me := session.Identity{UserID: uuid.New()}
	seed(t, svc, me)

	contacts, appErr := svc.List(context.Background(), me)
	require.Nil(t, appErr)

	names := make([]string, 0, len(contacts))
	for _, c := range contacts {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Ana", "Bruno", "Carla", "Diego Macana"}, names)
}

func TestContactService_SearchIsCaseInsensitive(t *testing.T) {
	svc, _, _ := newService(t)
	me := session.Identity{UserID: uuid.New()}
	seed(t, svc, me)
	ctx := context.Background()

	byCompany, appErr := svc.Search(ctx, me, "ACME")
	require.Nil(t, appErr)
	assert.Len(t, byCompany, 2)

	byEmail, _ := svc.Search(ctx, me, "globex.com")
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Ana", byEmail[0].Name)

	empty, appErr := svc.Search(ctx, me, "   ")
	require.Nil(t, appErr)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestContactService_ByCompanyAndStats(t *testing.T) {
	svc, _, _ := newService(t)
	me := session.Identity{UserID: uuid.New()}
	seed(t, svc, me)
	ctx := context.Background()

	acme, appErr := svc.ByCompany(ctx, me, "acme")
	require.Nil(t, appErr)
	assert.Len(t, acme, 2)

	stats, appErr := svc.Stats(ctx, me)
	require.Nil(t, appErr)
	assert.Equal(t, dto.ContactStats{Total: 4, WithCompany: 3, WithEmail: 2, WithPhone: 2, UniqueCompanies: 2}, *stats)
}

func TestContactService_AutocompletePrefersPrefix(t *testing.T) {
	svc, _, _ := newService(t)
	me := session.Identity{UserID: uuid.New()}
	seed(t, svc, me)

	suggestions, appErr := svc.Autocomplete(context.Background(), me, "ma")
	require.Nil(t, appErr)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Diego Macana", suggestions[0].Label)

	suggestions, _ = svc.Autocomplete(context.Background(), me, "car")
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Carla <carla@acme.com>", suggestions[0].Label)
	assert.Equal(t, "carla@acme.com", suggestions[0].Email)
}

func TestContactService_MutationsInvalidateAndScope(t *testing.T) {
	svc, repo, _ := newService(t)
	me := session.Identity{UserID: uuid.New()}
	other := session.Identity{UserID: uuid.New()}
	ctx := context.Background()

	created, appErr := svc.Create(ctx, me, &dto.CreateContactRequest{Name: "Eva"})
	require.Nil(t, appErr)

	list, _ := svc.List(ctx, me)
	assert.Len(t, list, 1)
	theirs, _ := svc.List(ctx, other)
	assert.Empty(t, theirs)

	_, appErr = svc.Update(ctx, other, created.ID, &dto.UpdateContactRequest{Name: ptr("Mallory")})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.KindNotFound, appErr.Kind())

	updated, appErr := svc.Update(ctx, me, created.ID, &dto.UpdateContactRequest{Company: ptr("Initech")})
	require.Nil(t, appErr)
	assert.Equal(t, "Eva", updated.Name)
	assert.Equal(t, "Initech", *updated.Company)

	list, _ = svc.List(ctx, me)
	require.Len(t, list, 1)
	assert.Equal(t, "Initech", *list[0].Company)

	for range 2 {
		id, appErr := svc.Delete(ctx, me, created.ID)
		require.Nil(t, appErr)
		assert.Equal(t, created.ID, id)
	}
	list, _ = svc.List(ctx, me)
	assert.Empty(t, list)

	writes := repo.writes
	_, appErr = svc.Create(ctx, session.Identity{}, &dto.CreateContactRequest{Name: "ghost"})
	assert.Equal(t, errors.KindUnauthenticated, appErr.Kind())
	assert.Equal(t, writes, repo.writes)
}

func TestContactService_ValidatesEmail(t *testing.T) {
	svc, _, _ := newService(t)

	_, appErr := svc.Create(context.Background(), session.Identity{UserID: uuid.New()}, &dto.CreateContactRequest{Name: "Eva", Email: ptr("not-an-email")})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.KindValidationFailure, appErr.Kind())
}
