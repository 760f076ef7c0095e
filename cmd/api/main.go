package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	hhttp "tierlimit/internal/handler/http"
	"tierlimit/internal/handler/http/limits"
	"tierlimit/internal/handler/http/requestid"
	pgRepo "tierlimit/internal/infra/adapter/persistence/postgres"
	"tierlimit/internal/infra/db"
	"tierlimit/internal/infra/redisconn"
	"tierlimit/internal/observability/logging"
	"tierlimit/internal/observability/tracing"
	limiterUC "tierlimit/internal/usecase/limiter"
	"tierlimit/pkg/config"
	"tierlimit/pkg/ratelimit"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	shutdownTracer := tracing.InitTracer("tierlimit")
	defer shutdownTracer(context.Background())

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	redisClient := initRedis(logger)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("failed to close redis client", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, database, redisClient, version)

	runServer(logger, handler, version)
}

// initDatabase opens the user store connection pool and, unless disabled
// via DB_MIGRATE_ON_START=false, runs pending migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if config.GetEnvBool("DB_MIGRATE_ON_START", true) {
		if err := db.MigrateUp(database); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
	}
	return database
}

// initRedis connects the counter store. The client connects lazily; the
// constructor performs an explicit PING so a misconfigured Redis fails the
// boot instead of the first request.
func initRedis(logger *slog.Logger) *redis.Client {
	opts, err := redisconn.OptionsFromEnv()
	if err != nil {
		logger.Error("invalid redis configuration", slog.Any("error", err))
		os.Exit(1)
	}

	client, err := redisconn.New(context.Background(), opts)
	if err != nil {
		logger.Error("failed to connect to redis", slog.Any("error", err))
		os.Exit(1)
	}
	return client
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires the engine, services, routes and middleware chain.
func setupServer(logger *slog.Logger, database *sql.DB, redisClient *redis.Client, version string) http.Handler {
	policies, err := config.LoadTierPolicies()
	if err != nil {
		logger.Error("failed to load tier policies", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("tier policies loaded", slog.Int("tiers", len(policies)))

	breaker := ratelimit.NewCounterBreaker(
		uint32(config.GetEnvInt("RATELIMIT_BREAKER_FAILURES", 5)),
		config.GetEnvDuration("RATELIMIT_BREAKER_RESET", 30*time.Second),
	)
	store := ratelimit.NewRedisCounterStore(redisClient, breaker)
	metrics := ratelimit.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	engine := ratelimit.NewEngine(store, policies, &ratelimit.SystemClock{}, metrics)

	svc := &limiterUC.Service{
		Repo:             pgRepo.NewUserRepo(database),
		Engine:           engine,
		UserStoreTimeout: config.GetEnvDuration("DB_QUERY_TIMEOUT", 3*time.Second),
	}

	mux := http.NewServeMux()
	limits.Register(mux, svc)
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Redis: redisClient, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database, Redis: redisClient})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	return applyMiddleware(logger, mux)
}

// applyMiddleware wraps the handler with the shared middleware chain, in
// order: Request ID → Tracing → Recovery → Logging → Body Limit → Metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	chain := handler

	// Innermost to outermost.
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(64 << 10)(chain) // override bodies are tiny
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown. HTTP is
// drained first so in-flight checks finish against live stores; the store
// clients are closed afterwards by the deferred cleanups in main.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := ":" + config.GetEnvString("PORT", "3000")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
