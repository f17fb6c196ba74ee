package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariefcatur/go-cart-sidebar/internal/archive"
	"github.com/ariefcatur/go-cart-sidebar/internal/config"
	kafkax "github.com/ariefcatur/go-cart-sidebar/internal/kafka"
	"github.com/ariefcatur/go-cart-sidebar/internal/orders"
	"github.com/ariefcatur/go-cart-sidebar/internal/postgres"
	"github.com/ariefcatur/go-cart-sidebar/internal/redisx"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.PostgresDSN == "" || cfg.RedisAddr == "" || len(cfg.KafkaBrokers) == 0 {
		log.Fatal("archiver needs POSTGRES_DSN, REDIS_ADDR and KAFKA_BROKERS")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &archive.Service{
		Repo:        &orders.ArchiveRepo{DB: db},
		Dedup:       archive.RedisDedup{RDB: rdb},
		ServiceName: cfg.ServiceName + "-archiver",
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.ArchiverGroup, orders.TopicOrderPlaced, cfg.ArchiverWorkers)
	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Printf("archiver started: group=%s topic=%s workers=%d", cfg.ArchiverGroup, orders.TopicOrderPlaced, cfg.ArchiverWorkers)
		if err := cons.Start(ctx, svc.HandleOrderPlaced); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Println("shutting down archiver...")
	cancel()
	<-done
}
