package calendar

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
	"github.com/salescoach-dev/sales-coach/internal/infrastructure/cache"
	"github.com/salescoach-dev/sales-coach/internal/infrastructure/external/googlecal"
	"github.com/salescoach-dev/sales-coach/internal/infrastructure/external/oauth"
)

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entities.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*entities.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *memoryUserRepo) Update(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeOAuth struct {
	token *oauth2.Token
	err   error
}

func (f *fakeOAuth) GetAuthURL(state string) string {
	return "https://accounts.google.example/auth?state=" + state
}

func (f *fakeOAuth) ExchangeCode(_ context.Context, _ string) (*oauth2.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.token, nil
}

func (f *fakeOAuth) TokenSource(_ context.Context, token *oauth2.Token) oauth2.TokenSource {
	return oauth2.StaticTokenSource(token)
}

type fakeLister struct {
	events []googlecal.Event
	err    error
}

func (f *fakeLister) ListTodayEvents(_ context.Context, _ oauth2.TokenSource, _ time.Time) ([]googlecal.Event, error) {
	return f.events, f.err
}

func newTestService(t *testing.T, provider *fakeOAuth, lister *fakeLister) (*Service, *memoryUserRepo, *entities.User) {
	t.Helper()
	repo := newMemoryUserRepo()
	user := entities.NewUser("rep@example.com", "hash", "営業太郎", "ABC商事", "", "", "+819012345678")
	require.NoError(t, repo.Create(context.Background(), user))

	store := cache.NewMemoryStore()
	t.Cleanup(store.Close)

	service := NewService(repo, provider, oauth.NewStateManager(store), lister, zap.NewNop())
	return service, repo, user
}

func TestConnectFlow(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	provider := &fakeOAuth{token: &oauth2.Token{
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		Expiry:       expiry,
	}}
	service, repo, user := newTestService(t, provider, &fakeLister{})
	ctx := context.Background()

	authURL, err := service.ConnectStart(ctx, user.ID)
	require.NoError(t, err)
	require.Contains(t, authURL, "state=")

	state := authURL[len("https://accounts.google.example/auth?state="):]
	require.NoError(t, service.ConnectCallback(ctx, state, "auth-code"))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.CalendarEnabled)
	require.NotNil(t, stored.GoogleAccessToken)
	assert.Equal(t, "at-1", *stored.GoogleAccessToken)
}

func TestConnectCallback_ForgedStateRejected(t *testing.T) {
	service, _, _ := newTestService(t, &fakeOAuth{}, &fakeLister{})

	err := service.ConnectCallback(context.Background(), "forged", "code")
	require.Error(t, err)
}

func TestTodayEvents_NotConnected(t *testing.T) {
	service, _, user := newTestService(t, &fakeOAuth{}, &fakeLister{})

	result := service.TodayEvents(context.Background(), user.ID)
	assert.False(t, result.Connected)
	assert.NotNil(t, result.Events)
	assert.Empty(t, result.Events)
}

func TestTodayEvents_Connected(t *testing.T) {
	lister := &fakeLister{events: []googlecal.Event{
		{ID: "ev-1", Title: "ABC商事 定例", Start: "2026-09-01T10:00:00+09:00"},
	}}
	service, repo, user := newTestService(t, &fakeOAuth{}, lister)
	ctx := context.Background()

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	stored.ConnectGoogleCalendar("at-1", "rt-1", nil)
	require.NoError(t, repo.Update(ctx, stored))

	result := service.TodayEvents(ctx, user.ID)
	assert.True(t, result.Connected)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "ABC商事 定例", result.Events[0].Title)
}

func TestTodayEvents_LookupFailureDegrades(t *testing.T) {
	lister := &fakeLister{err: errors.New("token revoked")}
	service, repo, user := newTestService(t, &fakeOAuth{}, lister)
	ctx := context.Background()

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	stored.ConnectGoogleCalendar("at-1", "rt-1", nil)
	require.NoError(t, repo.Update(ctx, stored))

	result := service.TodayEvents(ctx, user.ID)
	assert.False(t, result.Connected)
	assert.Empty(t, result.Events)
}

func TestDisconnect(t *testing.T) {
	service, repo, user := newTestService(t, &fakeOAuth{}, &fakeLister{})
	ctx := context.Background()

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	stored.ConnectGoogleCalendar("at-1", "rt-1", nil)
	require.NoError(t, repo.Update(ctx, stored))

	require.NoError(t, service.Disconnect(ctx, user.ID))

	stored, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.CalendarEnabled)
	assert.Nil(t, stored.GoogleAccessToken)
}
