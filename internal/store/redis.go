package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ariefcatur/go-cart-sidebar/internal/redisx"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one session's values under session:{sid}:{key}.
// Every write refreshes the TTL of the written key.
type RedisStore struct {
	rdb     *redis.Client
	session string
	ttl     time.Duration
}

func NewRedis(rdb *redis.Client, session string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = redisx.TTLSession
	}
	return &RedisStore{rdb: rdb, session: session, ttl: ttl}
}

func (s *RedisStore) key(k string) string {
	return fmt.Sprintf(redisx.KeySessionValue, s.session, k)
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return b, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, s.key(key), value, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.key(key)).Err()
}
