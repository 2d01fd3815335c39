package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/iudanet/goalsync/internal/config"
	"github.com/iudanet/goalsync/internal/crypto"
	"github.com/iudanet/goalsync/internal/logging"
	"github.com/iudanet/goalsync/internal/server"
	"github.com/iudanet/goalsync/internal/server/handlers"
	"github.com/iudanet/goalsync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "goalsyncd",
		Short:         "GoalSync reference sync server",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := map[string]*pflag.Flag{
				"addr":      cmd.Flags().Lookup("addr"),
				"db_path":   cmd.Flags().Lookup("db"),
				"log_level": cmd.Flags().Lookup("log-level"),
			}
			return run(cmd.Context(), configPath, flags)
		},
	}

	cmd.SetVersionTemplate(versionString())
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().String("db", "", "path to SQLite database")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func run(ctx context.Context, configPath string, flags map[string]*pflag.Flag) error {
	cfg, _, err := config.LoadServer(configPath, flags)
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()

	logger.Info("Storage ready", "path", cfg.DBPath)

	srv := server.New(server.Config{
		Addr:        cfg.Addr,
		Version:     Version,
		CORSOrigins: cfg.CORSOrigins,
		JWT: handlers.JWTConfig{
			Secret:         []byte(cfg.JWTSecret),
			AccessTokenTTL: cfg.AccessTokenTTL,
		},
		HashParams:      crypto.DefaultParams(),
		AuthRateLimit:   cfg.AuthRateLimit,
		AuthRateWindow:  cfg.AuthRateWindow,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, store, logger)

	return srv.Run(ctx)
}

func versionString() string {
	return fmt.Sprintf("GoalSync Server\nVersion:    %s\nBuild Date: %s\nGit Commit: %s\n", Version, BuildDate, GitCommit)
}
