// Package redisconn builds the Redis client used by the counter store.
package redisconn

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"tierlimit/pkg/config"
)

// Options is the subset of client configuration the service exposes
// through the environment.
type Options struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// OptionsFromEnv reads REDIS_HOST, REDIS_PORT, REDIS_PASSWORD and
// REDIS_DB. Host and port default to a local instance; a present but
// unparseable or out-of-range port is a configuration error, not a
// silent fallback.
func OptionsFromEnv() (Options, error) {
	opts := Options{
		Host: config.GetEnvString("REDIS_HOST", "127.0.0.1"),
		Port: 6379,
		DB:   config.GetEnvInt("REDIS_DB", 0),
		// Password stays empty unless configured; local and CI
		// instances usually run without auth.
		Password: config.GetEnvString("REDIS_PASSWORD", ""),
	}

	if raw := config.GetEnvString("REDIS_PORT", ""); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 1 || port > 65535 {
			return Options{}, fmt.Errorf("invalid REDIS_PORT %q: must be an integer in 1..65535", raw)
		}
		opts.Port = port
	}

	return opts, nil
}

// New builds the client and verifies the connection with a bounded PING.
func New(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		Password: opts.Password,
		DB:       opts.DB,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MaxRetries:   3,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s:%d: %w", opts.Host, opts.Port, err)
	}

	slog.Info("redis connection established",
		slog.String("host", opts.Host),
		slog.Int("port", opts.Port),
		slog.Int("db", opts.DB))
	return client, nil
}
