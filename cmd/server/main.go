package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/splitpocket/splitpocket/internal/auth"
	"github.com/splitpocket/splitpocket/internal/config"
	"github.com/splitpocket/splitpocket/internal/ledger"
	"github.com/splitpocket/splitpocket/internal/server"
	"github.com/splitpocket/splitpocket/internal/storage/sqlite"
	"github.com/splitpocket/splitpocket/pkg/logging"
)

const tokenDuration = 24 * time.Hour

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	kv, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	defer kv.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := ledger.New(ctx, kv,
		ledger.WithSelfName(cfg.SelfName),
		ledger.WithCurrency(cfg.Currency),
	)
	if err != nil {
		slog.Error("Failed to initialize ledger", "error", err)
		os.Exit(1)
	}

	var opts []server.Option
	if cfg.JWTSecret != "" {
		opts = append(opts, server.WithAuth(auth.NewJWTManager(cfg.JWTSecret, tokenDuration)))
	} else {
		slog.Warn("JWT_SECRET not set, API runs without authentication")
	}

	handler := server.New(store, opts...).Handler()

	// h2c serves HTTP/2 without TLS so the mobile client can multiplex.
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
