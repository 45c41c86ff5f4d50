package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/lex-ai/internal/config"
	"github.com/lex-ai/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisWithClient(client, zap.NewNop()), mr
}

func TestGetUserMissing(t *testing.T) {
	st, _ := newTestStore(t)

	rec, err := st.GetUser(context.Background(), "unknown-uid")
	require.NoError(t, err)
	assert.Nil(t, rec, "missing user must yield (nil, nil)")
}

func TestCreateAndGetUser(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	want := &domain.UserRecord{
		Email:       "user@example.com",
		DisplayName: "Test User",
		PhotoURL:    "https://example.com/p.png",
		LastLogin:   "2025-06-01T10:00:00Z",
		LastSeen:    "2025-06-01T10:00:00Z",
		LoginCount:  1,
		UserAgent:   "test-agent",
		IPAddress:   "127.0.0.1",
		CreatedAt:   "2025-06-01T10:00:00Z",
	}

	require.NoError(t, st.CreateUser(ctx, "uid-1", want))

	got, err := st.GetUser(ctx, "uid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, got)
}

func TestUpdateUserOverwrites(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	rec := &domain.UserRecord{Email: "user@example.com", LoginCount: 1}
	require.NoError(t, st.CreateUser(ctx, "uid-1", rec))

	rec.LoginCount = 2
	rec.LastLogout = "2025-06-01T12:00:00Z"
	require.NoError(t, st.UpdateUser(ctx, "uid-1", rec))

	got, err := st.GetUser(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.LoginCount)
	assert.Equal(t, "2025-06-01T12:00:00Z", got.LastLogout)
}

func TestUserRecordKeyLayout(t *testing.T) {
	st, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateUser(ctx, "uid-1", &domain.UserRecord{Email: "a@b.c"}))

	raw, err := mr.Get("users:uid-1")
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))
	assert.Equal(t, "a@b.c", fields["email"])
	assert.Contains(t, fields, "loginCount")
}

func TestCreateHistoryRoot(t *testing.T) {
	st, mr := newTestStore(t)

	require.NoError(t, st.CreateHistoryRoot(context.Background(), "uid-1"))

	raw, err := mr.Get("users:uid-1:history")
	require.NoError(t, err)

	var root domain.HistoryRoot
	require.NoError(t, json.Unmarshal([]byte(raw), &root))
	assert.Equal(t, 0, root.Count)
	assert.NotEmpty(t, root.Created)
}

func TestDegradedStoreRejectsAllCalls(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	st := &RedisStore{client: client, available: false, logger: zap.NewNop()}
	ctx := context.Background()

	assert.False(t, st.Available())

	_, err := st.GetUser(ctx, "uid-1")
	assert.ErrorIs(t, err, domain.ErrStoreDegraded)
	assert.ErrorIs(t, st.CreateUser(ctx, "uid-1", &domain.UserRecord{}), domain.ErrStoreDegraded)
	assert.ErrorIs(t, st.UpdateUser(ctx, "uid-1", &domain.UserRecord{}), domain.ErrStoreDegraded)
	assert.ErrorIs(t, st.CreateHistoryRoot(ctx, "uid-1"), domain.ErrStoreDegraded)
}

func TestNewRedisUnreachableIsDegradedNotFatal(t *testing.T) {
	st := NewRedis(config.StoreConfig{Addr: "127.0.0.1:1"}, zap.NewNop())
	t.Cleanup(func() { st.Close() })

	assert.False(t, st.Available(), "unreachable store must come up in degraded mode")
}

func TestDisabledStore(t *testing.T) {
	st := NewDisabled()
	ctx := context.Background()

	assert.False(t, st.Available())

	rec, err := st.GetUser(ctx, "uid-1")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrStoreDegraded)
	assert.NoError(t, st.Close())
}
