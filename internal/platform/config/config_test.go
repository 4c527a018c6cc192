package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults keep everything in memory", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("REDIS_URL", "")
		t.Setenv("KAFKA_BROKERS", "")

		cfg := FromEnv()
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Empty(t, cfg.Database.URL)
		assert.Empty(t, cfg.Redis.URL)
		assert.Empty(t, cfg.Kafka.Brokers)
		assert.Equal(t, 5*time.Second, cfg.TxTimeout)
		assert.NotEmpty(t, cfg.JWTSigningKey)
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("HOSTEL_ADDR", ":9090")
		t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
		t.Setenv("TX_TIMEOUT", "2s")
		t.Setenv("REDIS_POOL_SIZE", "not-a-number")

		cfg := FromEnv()
		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, 2*time.Second, cfg.TxTimeout)
		assert.Equal(t, 10, cfg.Redis.PoolSize, "invalid numbers fall back to the default")
	})
}
