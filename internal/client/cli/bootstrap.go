package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/iudanet/goalsync/internal/client/api"
	"github.com/iudanet/goalsync/internal/client/auth"
	"github.com/iudanet/goalsync/internal/client/data"
	"github.com/iudanet/goalsync/internal/client/retry"
	"github.com/iudanet/goalsync/internal/client/storage/boltdb"
	clientsync "github.com/iudanet/goalsync/internal/client/sync"
	"github.com/iudanet/goalsync/internal/config"
	pkgapi "github.com/iudanet/goalsync/pkg/api"
)

// DefaultFactory открывает bbolt реплику и собирает движок синхронизации
func DefaultFactory(ctx context.Context, cfg config.Client, logger *slog.Logger, notify io.Writer) (*App, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := boltdb.New(ctx, cfg.DBPath, logger.With("component", "storage"))
	if err != nil {
		return nil, fmt.Errorf("failed to open local database %s: %w", cfg.DBPath, err)
	}

	apiClient := api.NewClient(cfg.ServerURL)
	authService := auth.NewService(apiClient, store, logger.With("component", "auth"))

	notifier := clientsync.NotifierFunc(func(severity clientsync.Severity, message string) {
		_, _ = fmt.Fprintf(notify, "%s: %s\n", severity, message)
	})

	engine := clientsync.NewService(apiClient, store, authService, notifier, logger, clientsync.Config{
		Timezone:     cfg.Timezone,
		PollInterval: cfg.PollInterval,
		MaxQueueSize: cfg.MaxQueueSize,
		Retry: retry.Config{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  cfg.RetryBaseDelay,
			MaxDelay:   cfg.RetryMaxDelay,
		},
	})

	dataService := data.NewService(store, engine)
	for _, t := range pkgapi.EntityTypes() {
		engine.OnApply(t, dataService.Apply)
		engine.OnDelete(t, dataService.Remove)
	}

	if err := engine.Load(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load sync state: %w", err)
	}

	return &App{
		Auth:   authService,
		Data:   dataService,
		Engine: engine,
		Health: apiClient.Health,
		Close: func() error {
			engine.StopPolling()
			return store.Close()
		},
	}, nil
}
