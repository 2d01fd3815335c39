// Package server собирает HTTP сервер goalsyncd: маршруты, middleware и жизненный цикл.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"

	"github.com/iudanet/goalsync/internal/crypto"
	"github.com/iudanet/goalsync/internal/server/handlers"
	"github.com/iudanet/goalsync/internal/server/middleware"
	"github.com/iudanet/goalsync/internal/server/storage"
)

// HealthPath путь health check (не логируется)
const HealthPath = "/api/v1/health"

// Storage всё, что серверу нужно от хранилища
type Storage interface {
	storage.UserStorage
	handlers.SyncStorage
	handlers.Pinger
}

// Config параметры сборки сервера
type Config struct {
	Addr            string
	Version         string
	CORSOrigins     []string
	JWT             handlers.JWTConfig
	HashParams      crypto.Params
	AuthRateWindow  time.Duration
	ShutdownTimeout time.Duration
	AuthRateLimit   int
}

// Server HTTP сервер синхронизации
type Server struct {
	httpServer *http.Server
	limiter    *middleware.RateLimiter
	logger     *slog.Logger
	cfg        Config
}

// New собирает сервер
func New(cfg Config, store Storage, logger *slog.Logger) *Server {
	limiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)

	s := &Server{
		limiter: limiter,
		logger:  logger,
		cfg:     cfg,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(cfg, store, limiter, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	return s
}

// NewRouter строит дерево обработчиков.
// Порядок: request id, recovery, logging, CORS, gzip ответов, распаковка запросов, маршруты.
func NewRouter(cfg Config, store Storage, limiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	authHandler := handlers.NewAuthHandler(logger, store, cfg.JWT, cfg.HashParams)
	syncHandler := handlers.NewSyncHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, store, cfg.Version)

	rateLimited := middleware.RateLimitMiddleware(limiter, logger)
	authenticated := middleware.AuthMiddleware(logger, cfg.JWT)

	mux := http.NewServeMux()
	mux.Handle("POST /api/v1/auth/register", rateLimited(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/v1/auth/login", rateLimited(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/v1/sync", authenticated(http.HandlerFunc(syncHandler.HandleSync)))
	mux.HandleFunc("GET "+HealthPath, healthHandler.Health)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Content-Encoding", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           600,
	})

	return middleware.Chain(mux,
		middleware.RequestIDMiddleware(),
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger, HealthPath),
		corsHandler.Handler,
		gzhttp.GzipHandler,
		middleware.DecompressMiddleware(logger),
	)
}

// Handler возвращает корневой handler (для httptest)
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run слушает адрес до отмены ctx, затем корректно завершает активные запросы
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает уже открытый listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.limiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", ln.Addr().String(), "version", s.cfg.Version)
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server", "timeout", s.cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	s.logger.Info("Server stopped")
	return nil
}
