package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
	apperrors "github.com/phonestore/storefront/pkg/errors"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestSessionRepository_RoundTrip(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewSessionRepository(client, zap.NewNop())
	ctx := context.Background()
	now := time.Now()

	s := &session.Session{
		ID:        "sid-1",
		Token:     "tok",
		User:      &domain.User{ID: "u1", FullName: "Nguyen An"},
		CartKey:   "cart-1",
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, repo.Save(ctx, s))

	assert.True(t, mr.Exists(sessionPrefix+"sid-1"))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL(sessionPrefix+"sid-1").Seconds(), 2)

	loaded, err := repo.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "tok", loaded.Token)
	assert.Equal(t, "Nguyen An", loaded.User.FullName)

	require.NoError(t, repo.Delete(ctx, "sid-1"))
	_, err = repo.Get(ctx, "sid-1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSessionRepository_ExpiresWithSession(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewSessionRepository(client, zap.NewNop())
	ctx := context.Background()

	s := &session.Session{ID: "sid-2", CartKey: "c", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, repo.Save(ctx, s))

	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, "sid-2")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSessionRepository_SavingExpiredSessionDeletesIt(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewSessionRepository(client, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &session.Session{ID: "sid-3", CartKey: "c"}))
	assert.True(t, mr.Exists(sessionPrefix+"sid-3"))

	require.NoError(t, repo.Save(ctx, &session.Session{ID: "sid-3", CartKey: "c", ExpiresAt: time.Now().Add(-time.Second)}))
	assert.False(t, mr.Exists(sessionPrefix+"sid-3"))
}

func TestSuggestionCache(t *testing.T) {
	mr, client := setupTestRedis(t)
	cache := NewSuggestionCache(client, 30*time.Second)
	ctx := context.Background()

	_, ok, err := cache.GetSuggestions(ctx, "iphone")
	require.NoError(t, err)
	assert.False(t, ok)

	items := []domain.SearchSuggestion{{ID: "ip15", Name: "iPhone 15", Price: 19990000, Image: "/img/ip15.png"}}
	require.NoError(t, cache.SetSuggestions(ctx, "iphone", items))

	got, ok, err := cache.GetSuggestions(ctx, "iphone")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, items, got)

	mr.FastForward(31 * time.Second)
	_, ok, err = cache.GetSuggestions(ctx, "iphone")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSuggestionCache_EmptyListIsAHit(t *testing.T) {
	_, client := setupTestRedis(t)
	cache := NewSuggestionCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.SetSuggestions(ctx, "zzz", nil))

	got, ok, err := cache.GetSuggestions(ctx, "zzz")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
