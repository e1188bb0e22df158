package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

// SessionStore maps session ids to principals in Redis.
// Key format: session:<sid>, value: the principal's user id.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save records the principal under sid. Entries expire after ttl.
func (s *SessionStore) Save(ctx context.Context, sid string, p domain.Principal, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(sid), strconv.FormatInt(p.UserID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *SessionStore) Lookup(ctx context.Context, sid string) (domain.Principal, error) {
	v, err := s.client.Get(ctx, s.key(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Principal{}, domain.ErrSessionNotFound
		}
		return domain.Principal{}, fmt.Errorf("session lookup: %w", err)
	}

	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("session lookup: corrupt principal %q: %w", v, err)
	}
	return domain.Principal{UserID: id}, nil
}

// Delete is idempotent.
func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sid string) string {
	return "session:" + sid
}
