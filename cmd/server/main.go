package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ssmv/internal/api"
	"ssmv/internal/auth"
	"ssmv/internal/config"
	"ssmv/internal/database"
	"ssmv/internal/domain"
	"ssmv/internal/logging"
	"ssmv/internal/metrics"
	"ssmv/internal/repository"
	"ssmv/internal/web"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	repo, cleanup, err := initRepository(cfg, &logger)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	verifier := initVerifier(cfg)
	sessions := auth.NewSessions(time.Duration(cfg.Sessions.TTLSeconds) * time.Second)

	apiServer := api.NewServer(cfg.Server, cfg.RateLimit, repo, verifier, &logger)
	webServer, err := web.NewServer(cfg.Server, repo, sessions, verifier, apiServer.Handler(), &logger)
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetrics(ctx, cfg, &logger)
	startBackups(ctx, cfg, &logger)

	go func() {
		if err := webServer.Start(); err != nil {
			logger.Error().Err(err).Msg("web server stopped")
			stop()
		}
	}()

	logger.Info().
		Int("port", cfg.Server.Port).
		Str("driver", cfg.Storage.Driver).
		Msg("Server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = webServer.Shutdown(shutdownCtx)

	logger.Info().Msg("Server stopped")
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "server-main").Logger()

	return cfg, logger, closer, nil
}

// initRepository builds the booking repository for the configured storage
// driver. The returned cleanup closes whatever the driver opened.
func initRepository(cfg *config.Config, logger *zerolog.Logger) (domain.Repository, func(), error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		db, err := database.NewDB(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("init sqlite: %w", err)
		}
		logger.Info().Str("path", cfg.Storage.SQLite.Path).Msg("sqlite storage ready")
		return db, func() { _ = db.Close() }, nil

	case "file":
		store := repository.NewFileStore(cfg.Storage.File.Path)
		logger.Info().Str("path", cfg.Storage.File.Path).Msg("file storage ready")
		return repository.NewDocumentRepository(store), nil, nil

	case "redis":
		client := repository.NewRedisClient(cfg.Storage.Redis)
		if err := repository.Ping(context.Background(), client); err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info().Str("addr", cfg.Storage.Redis.Address).Msg("redis storage ready")
		store := repository.NewRedisStore(client, cfg.Storage.Redis.Key)
		return repository.NewDocumentRepository(store), func() { _ = repository.Close(client) }, nil

	case "remote":
		logger.Info().Str("base_url", cfg.Storage.Remote.BaseURL).Msg("remote storage ready")
		return repository.NewRemoteRepository(cfg.Storage.Remote.BaseURL, cfg.Storage.Remote.Timeout), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func initVerifier(cfg *config.Config) domain.CredentialVerifier {
	if cfg.Storage.Driver == "remote" && cfg.Admin.Username == "" {
		return auth.NewRemoteVerifier(cfg.Storage.Remote.BaseURL, cfg.Storage.Remote.Timeout)
	}
	return auth.NewLocalVerifier(cfg.Admin.Username, cfg.Admin.Password)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startBackups(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Backup.Enabled {
		return
	}

	var sourcePath string
	var sqlite bool
	switch cfg.Storage.Driver {
	case "sqlite":
		sourcePath, sqlite = cfg.Storage.SQLite.Path, true
	case "file":
		sourcePath = cfg.Storage.File.Path
	default:
		logger.Warn().Str("driver", cfg.Storage.Driver).Msg("Backups are only supported for local storage drivers")
		return
	}

	service := database.NewBackupService(sourcePath, sqlite, cfg.Backup, logger)
	go service.Start(ctx)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
