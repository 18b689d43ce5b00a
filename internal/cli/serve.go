package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/server"
	"storefront/internal/services"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	if err := database.EnsureIndexes(ctx, e.db); err != nil {
		return err
	}

	listingCache, closeCache := openCache(ctx, e.cfg)
	defer closeCache()

	st := database.NewStore(e.db)
	tokens := auth.NewTokens(e.cfg.JWTSecret, e.cfg.AccessTokenTTL)
	svc := services.New(st, tokens, services.Options{
		CatalogAdminOnly: e.cfg.CatalogAdminOnly,
		Cache:            listingCache,
	})

	router := server.NewRouter(server.Deps{
		Services:     svc,
		Resolver:     auth.NewResolver(tokens, st.Users),
		Ping:         func(ctx context.Context) error { return database.Ping(ctx, e.db) },
		StoreTimeout: e.cfg.StoreTimeout,
	})

	srv := &http.Server{
		Addr:              ":" + e.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("port", e.cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// openCache connects to Redis when REDIS_ADDR is set. An unreachable Redis
// disables listing caching instead of failing startup.
func openCache(ctx context.Context, cfg config.Config) (cache.Cache, func()) {
	if cfg.RedisAddr == "" {
		return cache.Nop{}, func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis unavailable, listing cache disabled")
		_ = rdb.Close()
		return cache.Nop{}, func() {}
	}

	logrus.WithField("addr", cfg.RedisAddr).Info("redis connected")
	return cache.NewRedis(rdb, cfg.CacheTTL), func() { _ = rdb.Close() }
}
