// Package archive copies placed orders from the order.placed topic into
// Postgres.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	kafkax "github.com/ariefcatur/go-cart-sidebar/internal/kafka"
	"github.com/ariefcatur/go-cart-sidebar/internal/orders"
	"github.com/ariefcatur/go-cart-sidebar/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type Archiver interface {
	Insert(ctx context.Context, o orders.ArchivedOrder) (existed bool, err error)
}

type Deduper interface {
	// MarkOnce reports true the first time key is seen.
	MarkOnce(ctx context.Context, key string) (bool, error)
	Forget(ctx context.Context, key string) error
}

type Service struct {
	Repo        Archiver
	Dedup       Deduper
	ServiceName string
}

// HandleOrderPlaced is installed as the consumer handler.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	first, err := s.Dedup.MarkOnce(ctx, dkey)
	if err != nil {
		// the archive insert is idempotent on its own
		log.Printf("archive: dedup %s: %v", env.EventID, err)
		first = true
	}
	if !first {
		return nil
	}

	existed, a, err := s.archive(ctx, env)
	if err != nil {
		// release the mark so a redelivery is processed again
		if ferr := s.Dedup.Forget(ctx, dkey); ferr != nil {
			log.Printf("archive: forget %s: %v", env.EventID, ferr)
		}
		return err
	}
	log.Printf("archive: order %d customer=%s total=%s existed=%t", a.OrderID, a.Customer, a.Total, existed)
	return nil
}

func (s *Service) archive(ctx context.Context, env orders.Envelope) (bool, orders.ArchivedOrder, error) {
	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return false, orders.ArchivedOrder{}, err
	}
	a, err := p.Archived()
	if err != nil {
		return false, a, err
	}
	existed, err := s.Repo.Insert(ctx, a)
	if err != nil {
		return false, a, fmt.Errorf("archive order %d: %w", a.OrderID, err)
	}
	return existed, a, nil
}

type RedisDedup struct {
	RDB *redis.Client
	TTL time.Duration
}

func (d RedisDedup) MarkOnce(ctx context.Context, key string) (bool, error) {
	ttl := d.TTL
	if ttl <= 0 {
		ttl = redisx.TTLDedup
	}
	return redisx.MarkOnce(ctx, d.RDB, key, ttl)
}

func (d RedisDedup) Forget(ctx context.Context, key string) error {
	return d.RDB.Del(ctx, key).Err()
}
