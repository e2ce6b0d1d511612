package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"notesync/internal/app/server/api"
	"notesync/internal/app/server/config"
	"notesync/internal/infrastructure/blob"
	"notesync/internal/infrastructure/indexer"
	"notesync/internal/infrastructure/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

// App owns the server's long-lived resources: the database pool, the
// attachment store, the indexer dispatcher, and the HTTP listener.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	storage *postgres.Storage
	idx     *indexer.Dispatcher
	srv     *http.Server
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	storage, err := postgres.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	blobStore, err := blob.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init blob store: %w", err)
	}

	idx := indexer.NewDispatcher(cfg.Indexer.URL, cfg.Indexer.QueueSize, log)

	mux := api.New(storage, blobStore, idx, log)

	return &App{
		cfg:     cfg,
		log:     log,
		storage: storage,
		idx:     idx,
		srv: &http.Server{
			Addr:    cfg.Server.RunAddress,
			Handler: mux,
		},
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down in order:
// stop accepting requests, drain the indexer queue, close the pool.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening", "address", a.cfg.Server.RunAddress)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("http shutdown failed", "error", err)
	}

	a.idx.Close()

	if err := a.storage.Close(); err != nil {
		a.log.Error("storage close failed", "error", err)
	}

	a.log.Info("server stopped")
	return nil
}
