package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "POSTGRES_DSN", "REDIS_ADDR", "KAFKA_BROKERS", "CART_RESCAN_DELAY", "CART_ACK_DURATION", "ARCHIVER_WORKERS", "CATALOG_TTL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.PostgresDSN)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 500*time.Millisecond, cfg.RescanDelay)
	assert.Equal(t, time.Second, cfg.AckDuration)
	assert.Equal(t, 4, cfg.ArchiverWorkers)
	assert.Equal(t, time.Minute, cfg.CatalogTTL)
	assert.Equal(t, "/login", cfg.LoginPath)
	assert.Equal(t, "/order-success", cfg.SuccessPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")
	t.Setenv("CART_RESCAN_DELAY", "2s")
	t.Setenv("CART_ACK_DURATION", "not-a-duration")
	t.Setenv("ARCHIVER_WORKERS", "-3")

	cfg := Load()
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2*time.Second, cfg.RescanDelay)
	assert.Equal(t, time.Second, cfg.AckDuration)
	assert.Equal(t, 4, cfg.ArchiverWorkers)
}
