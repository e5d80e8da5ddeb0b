package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"todo-app/internal/config"
	"todo-app/internal/db"
	apihttp "todo-app/internal/http"
	"todo-app/internal/metrics"
	"todo-app/internal/repository"
	"todo-app/internal/service"
)

// NewServeCmd crea el subcomando que levanta la API HTTP.
func NewServeCmd() *cobra.Command {
	var migrateFirst bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if migrateFirst {
				cfg.MigrateOnStart = true
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func runServe(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	if cfg.MigrateOnStart {
		if err := migrateUp(cfg.DatabaseURL); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()

	sessions, closeStore, err := newSessionStore(ctx, cfg, logger, pool)
	if err != nil {
		return err
	}
	defer closeStore()

	m := metrics.New()
	userRepo := repository.NewPgUserRepository(pool)
	todoRepo := repository.NewPgTodoRepository(pool)
	hasher := service.NewBcryptHasher(cfg.SaltRounds)
	signer := service.NewCookieSigner(cfg.SessionSecret)
	authSvc := service.NewAuthService(logger, userRepo, hasher, sessions, cfg.SessionTTL)

	authHandler := apihttp.NewAuthHandler(logger, authSvc, signer, m, apihttp.CookieOptions{
		Name:          cfg.SessionCookieName,
		Secure:        cfg.SessionCookieSecure,
		LoginRedirect: cfg.LoginRedirect,
	})
	todoHandler := apihttp.NewTodoHandler(logger, todoRepo)
	guard := apihttp.SessionAuthMiddleware(logger, authSvc, signer, cfg.SessionCookieName, m)
	router := apihttp.NewRouter(logger, m, authHandler, todoHandler, guard, func(ctx context.Context) error {
		return db.Ping(ctx, pool)
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func migrateUp(databaseURL string) error {
	m, err := db.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

// newSessionStore elige el backend segun SESSION_STORE. En modo auto usa
// Redis si responde y cae a Postgres si no.
func newSessionStore(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
	pool *pgxpool.Pool,
) (service.SessionStore, func(), error) {
	noop := func() {}

	switch cfg.SessionStore {
	case config.SessionStoreMemory:
		logger.Warn("using in-memory session store; sessions are lost on restart")
		return service.NewMemorySessionStore(), noop, nil
	case config.SessionStorePostgres:
		return postgresSessionStore(ctx, cfg, logger, pool)
	}

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := redisClient.Ping(ctxPing).Err()
		cancel()
		if err == nil {
			logger.Info("using redis session store", zap.String("collection", cfg.SessionCollection))
			return service.NewRedisSessionStore(redisClient, cfg.SessionCollection), func() { _ = redisClient.Close() }, nil
		}
		_ = redisClient.Close()
		if cfg.SessionStore == config.SessionStoreRedis {
			return nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		logger.Warn("redis ping failed, falling back to postgres sessions", zap.Error(err))
	}
	return postgresSessionStore(ctx, cfg, logger, pool)
}

func postgresSessionStore(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
	pool *pgxpool.Pool,
) (service.SessionStore, func(), error) {
	repo := repository.NewPgSessionRepository(pool)
	janitorCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		runSessionJanitor(janitorCtx, logger, repo, cfg.SessionCleanupInterval)
	}()
	logger.Info("using postgres session store")
	return repo, func() {
		cancel()
		<-done
	}, nil
}

type expiredSessionReaper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// runSessionJanitor borra sesiones vencidas cada interval hasta que ctx termine.
func runSessionJanitor(ctx context.Context, logger *zap.Logger, repo expiredSessionReaper, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("delete expired sessions failed", zap.Error(err))
				}
				continue
			}
			if n > 0 {
				logger.Info("expired sessions deleted", zap.Int64("count", n))
			}
		}
	}
}
