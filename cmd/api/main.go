package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/book-network/cmd/api/book"
	"github.com/book-network/cmd/api/config"
	"github.com/book-network/cmd/api/database"
	bookhttp "github.com/book-network/cmd/api/http"
	"github.com/book-network/cmd/api/inmemory"
	"github.com/book-network/cmd/api/logger"
	"github.com/book-network/cmd/api/notifications"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	err := run()
	if err != nil {
		logger.Get().Error().Err(err).Msg("book network stopped")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.ReadConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	log := logger.Get(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var ntfy book.Notifier
	if cfg.NotificationsEnabled {
		ntfy = notifications.NewNtfy(cfg.NotificationsURL, cfg.NotificationsTopic, &http.Client{Timeout: cfg.NotificationsTimeout})
		log.Info().Str("topic", cfg.NotificationsTopic).Msg("notifications enabled")
	}

	bookService := book.NewService(store, ntfy, cfg.NotificationsTimeout, book.WithLockWait(cfg.LockWait))
	bookHandler := bookhttp.NewBookHandler(bookService)

	server := bookhttp.NewServer(bookhttp.ServerConfig{
		Host:           cfg.Host,
		Port:           cfg.Port,
		RequestTimeout: cfg.RequestTimeout,
	}, bookHandler)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("http server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unexpected http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownRelease()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP shutdown error: %w", err)
		}
		log.Info().Msg("graceful shutdown complete")
		return nil
	})

	return g.Wait()
}

/* Postgres when a connection string is configured, memory otherwise. */
func openStore(ctx context.Context, cfg *config.Config) (book.Repository, func(), error) {
	log := logger.Get()

	if cfg.DBDsn == "" {
		store, err := inmemory.NewInMemoryStore()
		if err != nil {
			return nil, nil, fmt.Errorf("creating in memory store: %w", err)
		}
		log.Warn().Msg("no database configured, books are kept in memory")
		return store, func() {}, nil
	}

	db, err := database.ConnectDb(ctx, cfg.DBDriver, cfg.DBDsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting with db: %w", err)
	}

	store := database.NewStore(db)
	if err := database.MigrationUp(store, cfg.MigratePath); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrating: %w", err)
	}

	return store, func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("closing db")
		}
	}, nil
}
