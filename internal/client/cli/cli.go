// Package cli реализует команды goalsync поверх движка синхронизации.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/iudanet/goalsync/internal/client/iocli"
	"github.com/iudanet/goalsync/internal/client/storage"
	clientsync "github.com/iudanet/goalsync/internal/client/sync"
	"github.com/iudanet/goalsync/internal/config"
	"github.com/iudanet/goalsync/internal/logging"
	"github.com/iudanet/goalsync/internal/models"
	"github.com/iudanet/goalsync/pkg/api"
)

// PasswordEnv переменная окружения с паролем для неинтерактивного запуска
const PasswordEnv = "GOALSYNC_PASSWORD"

// skipApp аннотация команд, которым не нужны хранилище и движок
const skipApp = "goalsync/skip-app"

//go:generate moq -out cli_mock.go . Auth Data Engine

// Auth сессия пользователя
type Auth interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (*storage.AuthData, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*storage.AuthData, error)
}

// Data локальные мутации сущностей
type Data interface {
	Create(ctx context.Context, t api.EntityType, data json.RawMessage) (api.Entity, error)
	Update(ctx context.Context, t api.EntityType, id string, data json.RawMessage) (api.Entity, error)
	Delete(ctx context.Context, t api.EntityType, id string) error
	List(ctx context.Context, t api.EntityType) ([]api.Entity, error)
}

// Engine движок синхронизации
type Engine interface {
	Sync(ctx context.Context) (*clientsync.SyncResult, error)
	Pull(ctx context.Context) (*clientsync.SyncResult, error)
	StartPolling(ctx context.Context)
	StopPolling()
	OnConflictsDetected(fn func(models.PendingConflicts))
	PendingConflicts() models.PendingConflicts
	PendingItems(t api.EntityType) []api.QueueItem
	ResolveConflict(ctx context.Context, id string, choice models.Resolution) (bool, error)
	Status() clientsync.Status
}

// App зависимости команд
type App struct {
	Auth   Auth
	Data   Data
	Engine Engine
	Health func(ctx context.Context) error // проверка доступности сервера для status --check
	Close  func() error
}

// Factory собирает App по загруженной конфигурации
type Factory func(ctx context.Context, cfg config.Client, logger *slog.Logger, notify io.Writer) (*App, error)

// Options параметры запуска CLI
type Options struct {
	IO      iocli.IO
	In      io.Reader // stdin для --data -
	ErrOut  io.Writer // логи и уведомления движка
	Factory Factory
	Version string
}

// Cli состояние одного запуска
type Cli struct {
	opts         Options
	io           iocli.IO
	app          *App
	cfg          config.Client
	settings     map[string]any
	configPath   string
	passwordFile string
}

// Execute разбирает args и выполняет команду
func Execute(ctx context.Context, opts Options, args []string) error {
	if opts.IO == nil {
		opts.IO = iocli.NewStdio()
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	if opts.Factory == nil {
		opts.Factory = DefaultFactory
	}

	c := &Cli{opts: opts, io: opts.IO}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(opts.IO)
	root.SetErr(opts.ErrOut)
	if opts.In != nil {
		root.SetIn(opts.In)
	}

	err := root.ExecuteContext(ctx)
	if c.app != nil && c.app.Close != nil {
		if cerr := c.app.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close storage: %w", cerr)
		}
	}
	return err
}

func (c *Cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "goalsync",
		Short:             "Offline-first goal tracker sync client",
		Version:           c.opts.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "path to TOML config file (default "+config.DefaultClientConfigPath()+")")
	pf.String("server", "", "sync server URL")
	pf.String("db", "", "path to local database")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		c.registerCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.putCmd(),
		c.updateCmd(),
		c.deleteCmd(),
		c.listCmd(),
		c.syncCmd(),
		c.watchCmd(),
		c.statusCmd(),
		c.conflictsCmd(),
		c.resolveCmd(),
		c.configCmd(),
	)

	return root
}

// setup загружает конфигурацию и, если команде нужно, открывает хранилище
func (c *Cli) setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipApp] == "config-init" || cmd.Name() == "help" {
		return nil
	}

	flags := map[string]*pflag.Flag{
		"server_url": cmd.Flags().Lookup("server"),
		"db_path":    cmd.Flags().Lookup("db"),
		"log_level":  cmd.Flags().Lookup("log-level"),
	}
	cfg, settings, err := config.LoadClient(c.configPath, flags)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.settings = settings

	if cmd.Annotations[skipApp] != "" {
		return nil
	}

	logger, err := logging.New(c.opts.ErrOut, cfg.LogLevel, "text")
	if err != nil {
		return err
	}

	app, err := c.opts.Factory(cmd.Context(), cfg, logger, c.opts.ErrOut)
	if err != nil {
		return err
	}
	c.app = app
	return nil
}

// readPassword получает пароль по приоритету:
// 1. переменная окружения GOALSYNC_PASSWORD
// 2. файл --password-file
// 3. интерактивный ввод
func (c *Cli) readPassword(prompt string) (string, error) {
	if env, ok := lookupPasswordEnv(); ok {
		return env, nil
	}

	if c.passwordFile != "" {
		content, err := os.ReadFile(c.passwordFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		password := strings.TrimRight(string(content), "\r\n")
		if password == "" {
			return "", errors.New("password file is empty")
		}
		return password, nil
	}

	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return password, nil
}

func lookupPasswordEnv() (string, bool) {
	env := os.Getenv(PasswordEnv)
	return env, env != ""
}

func parseType(s string) (api.EntityType, error) {
	t, err := api.ParseEntityType(s)
	if err != nil {
		return "", fmt.Errorf("%w (expected one of: %s)", err, typeNames())
	}
	return t, nil
}

func typeNames() string {
	names := make([]string, 0, len(api.EntityTypes()))
	for _, t := range api.EntityTypes() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
