package config

import (
	"context"    // startup ping deadline
	"crypto/tls" // optional TLS to redis
	"fmt"        // error wrapping
	"os"         // environment variables
	"time"       // ping timeout

	"github.com/redis/go-redis/v9" // redis client
)

// RedisConfig locates the optional Redis server that keeps unsaved service
// drafts.  An empty Addr means drafts stay in process memory.
type RedisConfig struct {
	Addr     string // host:port; REDIS_HOST+REDIS_PORT win over REDIS_ADDR
	Password string // REDIS_PASSWORD
	DB       int    // REDIS_DB
	TLS      bool   // REDIS_TLS
}

func loadRedis() RedisConfig {
	addr := os.Getenv("REDIS_ADDR")
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	return RedisConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       envInt("REDIS_DB", 0),
		TLS:      envBool("REDIS_TLS", false),
	}
}

// Enabled reports whether a Redis server is configured.
func (rc RedisConfig) Enabled() bool { return rc.Addr != "" }

// NewRedisClient connects to the configured server and pings it with a
// short timeout.  It returns nil, nil when Redis is not configured, and an
// error when the server does not answer; the caller then keeps drafts in
// memory.
func NewRedisClient(rc RedisConfig) (*redis.Client, error) {
	if !rc.Enabled() {
		return nil, nil
	}
	opts := &redis.Options{Addr: rc.Addr, Password: rc.Password, DB: rc.DB}
	if rc.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", rc.Addr, err)
	}
	return client, nil
}
