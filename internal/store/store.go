// Package store persists JSON values under short keys (cart, orders, user)
// in a key-value backend scoped to one browsing session.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

const (
	KeyCart   = "cart"
	KeyOrders = "orders"
	KeyUser   = "user"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Load decodes the value stored under key. Missing keys, backend failures and
// malformed JSON all report ok=false so callers fall back to an empty value.
func Load[T any](ctx context.Context, s Store, key string) (v T, ok bool) {
	b, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("store: get %q: %v", key, err)
		}
		return v, false
	}
	if err := json.Unmarshal(b, &v); err != nil {
		log.Printf("store: decode %q: %v", key, err)
		var zero T
		return zero, false
	}
	return v, true
}

func Save(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, b); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func Clear(ctx context.Context, s Store, key string) error {
	if err := s.Delete(ctx, key); err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	return nil
}
