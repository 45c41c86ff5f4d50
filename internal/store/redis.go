package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lex-ai/internal/config"
	"github.com/lex-ai/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore implements IdentityStore on a Redis document layout:
// user records as JSON at users:{uid}, history roots at users:{uid}:history.
type RedisStore struct {
	client    *redis.Client
	available bool
	logger    *zap.Logger
}

// NewRedis creates a Redis-backed identity store. The connection is probed
// once here: a failed ping produces a store in degraded mode rather than
// an error, since the store is an optional collaborator.
func NewRedis(cfg config.StoreConfig, logger *zap.Logger) *RedisStore {
	log := logger.Named("identity_store")

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	available := true
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("identity store unreachable, running in session-only mode",
			zap.String("addr", cfg.Addr),
			zap.Error(err),
		)
		available = false
	}

	return &RedisStore{
		client:    rdb,
		available: available,
		logger:    log,
	}
}

// NewRedisWithClient wraps an existing client; used by tests.
func NewRedisWithClient(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client:    client,
		available: true,
		logger:    logger.Named("identity_store"),
	}
}

// Available reports whether the store can be used.
func (s *RedisStore) Available() bool {
	return s.available
}

func userKey(uid string) string    { return "users:" + uid }
func historyKey(uid string) string { return "users:" + uid + ":history" }

// GetUser fetches the record for uid. Missing users yield (nil, nil).
func (s *RedisStore) GetUser(ctx context.Context, uid string) (*domain.UserRecord, error) {
	if !s.available {
		return nil, domain.ErrStoreDegraded
	}

	raw, err := s.client.Get(ctx, userKey(uid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.E(domain.KindStoreUnavailable, "get_user", err)
	}

	var rec domain.UserRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, domain.E(domain.KindStoreUnavailable, "decode_user", err)
	}

	return &rec, nil
}

// CreateUser writes a new user record.
func (s *RedisStore) CreateUser(ctx context.Context, uid string, rec *domain.UserRecord) error {
	return s.writeUser(ctx, "create_user", uid, rec)
}

// UpdateUser overwrites the record for an existing user. The loginCount
// increment is composed by the caller from a prior GetUser, so two
// concurrent sign-ins for one uid can lose an increment; that matches the
// accepted behavior of the store integration.
func (s *RedisStore) UpdateUser(ctx context.Context, uid string, rec *domain.UserRecord) error {
	return s.writeUser(ctx, "update_user", uid, rec)
}

func (s *RedisStore) writeUser(ctx context.Context, op, uid string, rec *domain.UserRecord) error {
	if !s.available {
		return domain.ErrStoreDegraded
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return domain.E(domain.KindStoreUnavailable, op, err)
	}

	if err := s.client.Set(ctx, userKey(uid), raw, 0).Err(); err != nil {
		return domain.E(domain.KindStoreUnavailable, op, err)
	}

	return nil
}

// CreateHistoryRoot initializes the per-user history sub-record.
func (s *RedisStore) CreateHistoryRoot(ctx context.Context, uid string) error {
	if !s.available {
		return domain.ErrStoreDegraded
	}

	root := domain.HistoryRoot{
		Created: domain.Timestamp(),
		Count:   0,
	}

	raw, err := json.Marshal(root)
	if err != nil {
		return domain.E(domain.KindStoreUnavailable, "create_history_root", err)
	}

	if err := s.client.Set(ctx, historyKey(uid), raw, 0).Err(); err != nil {
		return domain.E(domain.KindStoreUnavailable, "create_history_root", err)
	}

	return nil
}

// Ping tests the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
