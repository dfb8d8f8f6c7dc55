package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"liendesk/internal/domain"
)

// RedisDraftStore keeps the snapshot in Redis so a draft can be resumed on
// another machine. A positive TTL expires abandoned drafts.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
	key    string
}

// OpenRedisDraftStore connects to url (redis://…) and checks the connection.
func OpenRedisDraftStore(ctx context.Context, url string, ttl time.Duration) (*RedisDraftStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisDraftStore(client, ttl), nil
}

// NewRedisDraftStore wraps an existing client.
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl, key: domain.DraftKey}
}

// ForAccount scopes the store to one user, so users sharing a Redis never
// see each other's drafts. An empty account keeps the shared key.
func (s *RedisDraftStore) ForAccount(account string) *RedisDraftStore {
	key := domain.DraftKey
	if account != "" {
		key += ":" + account
	}
	return &RedisDraftStore{client: s.client, ttl: s.ttl, key: key}
}

// Key returns the Redis key holding the snapshot.
func (s *RedisDraftStore) Key() string { return s.key }

func (s *RedisDraftStore) SaveDraft(ctx context.Context, snap domain.Snapshot) error {
	b, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, b, s.ttl).Err()
}

func (s *RedisDraftStore) LoadDraft(ctx context.Context) (domain.Snapshot, bool, error) {
	b, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Snapshot{}, false, nil
	}
	if err != nil {
		return domain.Snapshot{}, false, err
	}
	snap, err := decodeSnapshot(b)
	if err != nil {
		return domain.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *RedisDraftStore) ClearDraft(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

// Close closes the client.
func (s *RedisDraftStore) Close() error { return s.client.Close() }
