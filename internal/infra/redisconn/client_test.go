package redisconn

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestOptionsFromEnv_Defaults(t *testing.T) {
	opts, err := OptionsFromEnv()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", opts.Host)
	require.Equal(t, 6379, opts.Port)
	require.Equal(t, 0, opts.DB)
	require.Empty(t, opts.Password)
}

func TestOptionsFromEnv_Overrides(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_PASSWORD", "hunter2")
	t.Setenv("REDIS_DB", "3")

	opts, err := OptionsFromEnv()
	require.NoError(t, err)
	require.Equal(t, "cache.internal", opts.Host)
	require.Equal(t, 6380, opts.Port)
	require.Equal(t, "hunter2", opts.Password)
	require.Equal(t, 3, opts.DB)
}

func TestOptionsFromEnv_InvalidPort(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-1", "65536"} {
		t.Setenv("REDIS_PORT", raw)
		_, err := OptionsFromEnv()
		require.Error(t, err, "port %q must be rejected", raw)
	}
}

func TestNew_PingVerifiesConnection(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(context.Background(), Options{Host: mr.Host(), Port: mustPort(t, mr.Port())})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
}

func TestNew_UnreachableServer(t *testing.T) {
	mr := miniredis.RunT(t)
	port := mustPort(t, mr.Port())
	mr.Close()

	_, err := New(context.Background(), Options{Host: "127.0.0.1", Port: port})
	require.Error(t, err)
}

func mustPort(t *testing.T, s string) int {
	t.Helper()
	port, err := strconv.Atoi(s)
	require.NoError(t, err)
	return port
}
