package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/pulseboard/pulseboard/internal/api"
	"github.com/pulseboard/pulseboard/internal/auth"
	"github.com/pulseboard/pulseboard/internal/config"
	"github.com/pulseboard/pulseboard/internal/db"
	"github.com/pulseboard/pulseboard/internal/feedback"
	"github.com/pulseboard/pulseboard/internal/profile"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	ctx := context.Background()
	deps := api.RouterDeps{
		AllowedOrigins: cfg.AllowedOrigins,
		Version:        cfg.Version,
	}

	// Missing or unreachable stores degrade the server instead of killing it:
	// the dependent route groups stay unregistered and /health reports it.
	pool := connectPostgres(ctx, cfg.DatabaseURL)
	redisClient := connectRedis(ctx, cfg.RedisURL)

	if pool != nil {
		defer pool.Close()
		deps.DBPinger = pool
		deps.Profiles = profile.NewRepository(pool)
		deps.Feedback = feedback.NewRepository(pool)
		deps.FeedbackSvc = feedback.NewService(deps.Feedback)
		deps.Stats = feedback.NewStatsService(deps.Feedback, deps.Profiles)
	}

	var unsubscribe func()
	if pool != nil && redisClient != nil {
		defer redisClient.Close()
		deps.RedisPinger = redisPinger{client: redisClient}

		sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
		sessions := auth.NewRedisSessionStore(redisClient, sessionTTL)
		accounts := auth.NewRepository(pool)
		deps.Auth = auth.NewService(accounts, sessions, cfg.BcryptCost)
		defer deps.Auth.Close()

		// Profile provisioning rides the auth state change stream as a
		// detached task; sign-in never waits on it.
		provisioner := profile.NewProvisioner(deps.Profiles)
		unsubscribe = deps.Auth.Subscribe(func(e auth.Event) {
			if e.Type != auth.EventSignedIn || e.Identity == nil {
				return
			}
			identity := e.Identity
			go func() {
				provisionCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				provisioner.Provision(provisionCtx, identity)
			}()
		})
		defer unsubscribe()
	}

	router := api.NewRouter(deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting pulseboard server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

func connectPostgres(ctx context.Context, databaseURL string) *pgxpool.Pool {
	if databaseURL == "" {
		slog.Error("DATABASE_URL not set; feedback, profile and stats routes disabled")
		return nil
	}
	pool, err := db.Connect(ctx, databaseURL)
	if err != nil {
		slog.Error("postgres connection failed; feedback, profile and stats routes disabled", "error", err)
		return nil
	}
	return pool
}

func connectRedis(ctx context.Context, redisURL string) *redis.Client {
	if redisURL == "" {
		slog.Error("REDIS_URL not set; auth routes disabled")
		return nil
	}
	client, err := db.ConnectRedis(ctx, redisURL)
	if err != nil {
		slog.Error("redis connection failed; auth routes disabled", "error", err)
		return nil
	}
	return client
}

// redisPinger adapts a Redis client to the health handler's Pinger.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
