package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactdesk/contact-manager/internal/core/domain"
	"github.com/contactdesk/contact-manager/internal/core/ports"
)

type stubContactRepo struct {
	mu       sync.Mutex
	contacts map[string]*domain.Contact
	seq      int
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{contacts: make(map[string]*domain.Contact)}
}

func (r *stubContactRepo) Create(_ context.Context, c *domain.Contact) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	stored := *c
	stored.ID = fmt.Sprintf("contact-%d", r.seq)
	r.contacts[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *stubContactRepo) ListByUser(_ context.Context, userID string) ([]*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Contact{}
	for _, c := range r.contacts {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubContactRepo) FindByID(_ context.Context, userID, id string) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[id]
	if !ok || c.UserID != userID {
		return nil, domain.ErrContactNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubContactRepo) Update(_ context.Context, c *domain.Contact) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.contacts[c.ID]
	if !ok || existing.UserID != c.UserID {
		return nil, domain.ErrContactNotFound
	}
	stored := *c
	r.contacts[c.ID] = &stored
	out := stored
	return &out, nil
}

func (r *stubContactRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[id]
	if !ok || c.UserID != userID {
		return domain.ErrContactNotFound
	}
	delete(r.contacts, id)
	return nil
}

func newContactSvc(repo ports.ContactRepository) (*ContactService, *fakeClock) {
	clock := &fakeClock{t: epoch}
	svc := NewContactService(repo, zerolog.Nop())
	svc.now = clock.Now
	return svc, clock
}

func TestContactService_Create(t *testing.T) {
	svc, _ := newContactSvc(newStubContactRepo())

	c, err := svc.Create(context.Background(), "u1", ports.ContactInput{
		Name:  "  Grace Hopper ",
		Notes: []domain.Note{{Text: "met at conf"}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "Grace Hopper", c.Name)
	assert.Equal(t, epoch, c.CreatedAt)
	assert.NotNil(t, c.Emails)
	assert.NotNil(t, c.SocialLinks)
	require.Len(t, c.Notes, 1)
	assert.Equal(t, epoch, c.Notes[0].Date)
}

func TestContactService_Create_RequiresName(t *testing.T) {
	svc, _ := newContactSvc(newStubContactRepo())

	_, err := svc.Create(context.Background(), "u1", ports.ContactInput{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestContactService_List_NewestFirstAndScoped(t *testing.T) {
	svc, clock := newContactSvc(newStubContactRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", ports.ContactInput{Name: "first"})
	require.NoError(t, err)
	clock.t = epoch.Add(time.Hour)
	_, err = svc.Create(ctx, "u1", ports.ContactInput{Name: "second"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", ports.ContactInput{Name: "other"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Name)
	assert.Equal(t, "first", list[1].Name)
}

func TestContactService_OtherUsersContactIsHidden(t *testing.T) {
	svc, _ := newContactSvc(newStubContactRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, "u1", ports.ContactInput{Name: "mine"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "u2", c.ID)
	assert.ErrorIs(t, err, domain.ErrContactNotFound)

	_, err = svc.Update(ctx, "u2", c.ID, ports.ContactInput{Name: "stolen"})
	assert.ErrorIs(t, err, domain.ErrContactNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "u2", c.ID), domain.ErrContactNotFound)

	got, err := svc.Get(ctx, "u1", c.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Name)
}

func TestContactService_Update(t *testing.T) {
	svc, clock := newContactSvc(newStubContactRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, "u1", ports.ContactInput{Name: "Ada", Company: "Analytical"})
	require.NoError(t, err)

	clock.t = epoch.Add(2 * time.Hour)
	updated, err := svc.Update(ctx, "u1", c.ID, ports.ContactInput{Name: "Ada L.", Phones: []string{"555"}})
	require.NoError(t, err)

	assert.Equal(t, "Ada L.", updated.Name)
	assert.Empty(t, updated.Company)
	assert.Equal(t, []string{"555"}, updated.Phones)
	assert.Equal(t, epoch, updated.CreatedAt)
	assert.Equal(t, epoch.Add(2*time.Hour), updated.UpdatedAt)
}

func TestContactService_Delete(t *testing.T) {
	svc, _ := newContactSvc(newStubContactRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, "u1", ports.ContactInput{Name: "temp"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "u1", c.ID))
	_, err = svc.Get(ctx, "u1", c.ID)
	assert.ErrorIs(t, err, domain.ErrContactNotFound)
}
