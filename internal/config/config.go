package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr     string
	PostgresDSN  string // empty -> static menu, no archive
	RedisAddr    string // empty -> in-memory session store
	KafkaBrokers []string
	ServiceName  string

	Currency    string
	LoginPath   string
	SuccessPath string

	RescanDelay time.Duration
	AckDuration time.Duration
	SessionTTL  time.Duration
	CatalogTTL  time.Duration

	ArchiverGroup   string
	ArchiverWorkers int
}

func Load() Config {
	return Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
		ServiceName:  getenv("SERVICE_NAME", "storefront"),

		Currency:    getenv("CART_CURRENCY", "₱"),
		LoginPath:   getenv("LOGIN_PATH", "/login"),
		SuccessPath: getenv("ORDER_SUCCESS_PATH", "/order-success"),

		RescanDelay: getduration("CART_RESCAN_DELAY", 500*time.Millisecond),
		AckDuration: getduration("CART_ACK_DURATION", time.Second),
		SessionTTL:  getduration("SESSION_TTL", 7*24*time.Hour),
		CatalogTTL:  getduration("CATALOG_TTL", time.Minute),

		ArchiverGroup:   getenv("ARCHIVER_GROUP", "order-archiver"),
		ArchiverWorkers: getint("ARCHIVER_WORKERS", 4),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getint(k string, def int) int {
	i, err := strconv.Atoi(os.Getenv(k))
	if err != nil || i <= 0 {
		return def
	}
	return i
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
