package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kwestendorf/scopeworker/config"
	"kwestendorf/scopeworker/internal/orchestrator"
	"kwestendorf/scopeworker/internal/reticle"
	"kwestendorf/scopeworker/internal/source"
	"kwestendorf/scopeworker/internal/store"
	"kwestendorf/scopeworker/logger"
	"kwestendorf/scopeworker/services/api"
	"kwestendorf/scopeworker/services/cache"
	"kwestendorf/scopeworker/services/publisher"
	"kwestendorf/scopeworker/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Dur("refresh_interval", cfg.RefreshInterval).
		Bool("use_browser", cfg.UseBrowser).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services
	services, err := initializeServices(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	// Create source adapters
	adapters := source.CreateAdapters(cfg, services.Provider)
	if len(adapters) == 0 {
		log.Fatal().Msg("No source adapters were created")
	}

	log.Info().
		Int("source_count", len(adapters)).
		Msg("Created source adapters")

	orch := orchestrator.New(adapters, services.Store, services.Cache, services.Publisher, cfg.RefreshCooldown)

	// Create and start worker
	w := worker.NewWorker(orch, services.Publisher, cfg.RefreshInterval)
	go func() {
		log.Info().Msg("Starting scope worker")
		w.Start(ctx)
	}()

	// Create and start API server
	server := api.NewServer(cfg.APIAddr, orch, reticle.LeupoldCatalog)
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
	case err := <-serverDone:
		if err != nil {
			log.Error().Err(err).Msg("API server exited with error")
		}
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("API server shutdown failed")
	}
}

// Services holds all the initialized services
type Services struct {
	Store     store.Store
	Cache     cache.CacheService
	Publisher publisher.Publisher
	Provider  source.SnapshotProvider
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Provider != nil {
		s.Provider.Close()
	}
	if s.Publisher != nil {
		s.Publisher.Close()
	}
	if s.Store != nil {
		s.Store.Close()
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg config.Config) (*Services, error) {
	services := &Services{}

	st, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	services.Store = st

	logger.Info("Opened record store at %s", cfg.DBPath)

	// Without a memcache address, refresh cooldowns live in process memory
	if cfg.MemcacheAddr != "" {
		services.Cache = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
	} else {
		services.Cache = cache.NewMemoryService()
		logger.Info("Using in-memory cooldown cache")
	}

	if cfg.RedisAddr != "" {
		services.Publisher = publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamCount,
			cfg.RedisStreamMaxLength,
		)
		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	if cfg.UseBrowser {
		services.Provider = source.NewRodProvider(cfg.BrowserWSURL)
		logger.Info("Using headless browser snapshot provider")
	} else {
		services.Provider = source.NewHTTPProvider()
		logger.Info("Using plain HTTP snapshot provider")
	}

	return services, nil
}
