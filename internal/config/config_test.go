package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "DB_DRIVER", "DB_NAME", "OPERATOR_USER", "OPERATOR_PASSWORD", "JWT_SECRET", "DRAFT_TTL", "INVOICE_AUTO_OPEN"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "VehicleServiceManagement", cfg.DB.Name)
	assert.Equal(t, "admin", cfg.OperatorUser)
	assert.Equal(t, "admin", cfg.OperatorPassword)
	assert.Equal(t, 12*time.Hour, cfg.DraftTTL)
	assert.True(t, cfg.InvoiceAutoOpen)
	assert.Len(t, cfg.JWTSecret, 64, "a random secret is generated when none is configured")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_BOOTSTRAP", "yes")
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("DRAFT_TTL", "30m")
	t.Setenv("JWT_SECRET", "fixed")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.True(t, cfg.DB.Bootstrap)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 30*time.Minute, cfg.DraftTTL)
	assert.Equal(t, "fixed", cfg.JWTSecret)
}

func TestLoadShopProfile(t *testing.T) {
	t.Run("empty path gives default", func(t *testing.T) {
		p, err := LoadShopProfile("")
		require.NoError(t, err)
		assert.Equal(t, DefaultShopProfile(), p)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "shop.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: Torque Garage\nphone: \"080-555\"\n"), 0o644))

		p, err := LoadShopProfile(path)
		require.NoError(t, err)
		assert.Equal(t, "Torque Garage", p.Name)
		assert.Equal(t, "Bangalore, Karnataka", p.Address)
		assert.Equal(t, "080-555", p.Phone)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadShopProfile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestLoadRedis(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("REDIS_TLS", "")
	assert.Equal(t, RedisConfig{Addr: "cache:6379", DB: 3}, Load().Redis)

	t.Setenv("REDIS_HOST", "10.0.0.5")
	t.Setenv("REDIS_PORT", "6380")
	assert.Equal(t, "10.0.0.5:6380", Load().Redis.Addr)
}

func TestNewRedisClient_NotConfigured(t *testing.T) {
	rdb, err := NewRedisClient(RedisConfig{})
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}
