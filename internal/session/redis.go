package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ariefcatur/go-marketplace.git/internal/redisx"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session under its own key and lets Redis expire it.
type RedisStore struct {
	Redis *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{Redis: rdb} }

func (s *RedisStore) Create(ctx context.Context, sess Session) error {
	ttl := time.Until(sess.Expires)
	if ttl <= 0 {
		return s.Destroy(ctx, sess.ID)
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.Redis.Set(ctx, redisx.SessionKey(sess.ID), b, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (Session, bool, error) {
	b, err := s.Redis.Get(ctx, redisx.SessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, err
	}
	var out Session
	if err := json.Unmarshal(b, &out); err != nil {
		return Session{}, false, fmt.Errorf("decode session %s: %w", id, err)
	}
	out.ID = id
	return out, true, nil
}

func (s *RedisStore) Touch(ctx context.Context, id string, expires time.Time) error {
	sess, ok, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	sess.Expires = expires
	return s.Create(ctx, sess)
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	return s.Redis.Del(ctx, redisx.SessionKey(id)).Err()
}

// PruneExpired is a no-op: Redis drops keys when their TTL runs out.
func (s *RedisStore) PruneExpired(context.Context) (int, error) { return 0, nil }
