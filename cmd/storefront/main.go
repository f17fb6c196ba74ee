package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-cart-sidebar/internal/cart"
	"github.com/ariefcatur/go-cart-sidebar/internal/config"
	"github.com/ariefcatur/go-cart-sidebar/internal/httpx"
	kafkax "github.com/ariefcatur/go-cart-sidebar/internal/kafka"
	"github.com/ariefcatur/go-cart-sidebar/internal/orders"
	"github.com/ariefcatur/go-cart-sidebar/internal/postgres"
	"github.com/ariefcatur/go-cart-sidebar/internal/redisx"
	"github.com/ariefcatur/go-cart-sidebar/internal/store"
	"github.com/ariefcatur/go-cart-sidebar/internal/storefront"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sc := httpx.SessionsConfig{
		Menu: storefront.DefaultMenu,
		Cart: cart.Options{
			Currency:    cfg.Currency,
			LoginPath:   cfg.LoginPath,
			SuccessPath: cfg.SuccessPath,
			RescanDelay: cfg.RescanDelay,
			AckDuration: cfg.AckDuration,
		},
		TTL: cfg.SessionTTL,
	}

	// Session store: Redis when configured, process memory otherwise
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping: %v", err)
		}
		sc.Store = func(sid string) store.Store { return store.NewRedis(rdb, sid, cfg.SessionTTL) }
	} else {
		log.Println("REDIS_ADDR not set, carts live in process memory")
	}

	var history httpx.OrderHistory

	// Catalog: products table, appended after the built-in menu
	if cfg.PostgresDSN != "" {
		db, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatalf("db migrate: %v", err)
		}
		sc.Catalog = &storefront.Cached{Catalog: &orders.Repo{DB: db}, TTL: cfg.CatalogTTL}
		history = &orders.ArchiveRepo{DB: db}
	}

	// Order events
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
		prod.Start(ctx)
		sc.Sink = func(sid string) cart.OrderSink {
			return &orders.Publisher{Producer: prod, Service: cfg.ServiceName, SessionID: sid}
		}
	}

	sessions := httpx.NewSessions(sc)
	go sessions.RunJanitor(ctx, time.Minute)

	router := httpx.NewRouter()
	sh := &httpx.StorefrontHandler{Sessions: sessions, Currency: cfg.Currency, History: history}
	sh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	cancel()
	if prod != nil {
		prod.Close()
		prod.WaitClosed()
	}
}
