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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/cypherlabdev/fixture-analyst-service/internal/cache"
	"github.com/cypherlabdev/fixture-analyst-service/internal/config"
	httpHandler "github.com/cypherlabdev/fixture-analyst-service/internal/handler/http"
	"github.com/cypherlabdev/fixture-analyst-service/internal/ledger"
	"github.com/cypherlabdev/fixture-analyst-service/internal/messaging"
	"github.com/cypherlabdev/fixture-analyst-service/internal/provider/gemini"
	"github.com/cypherlabdev/fixture-analyst-service/internal/provider/sportmonks"
	"github.com/cypherlabdev/fixture-analyst-service/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(configPath())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("starting fixture-analyst-service")

	// Cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create Redis cache
	redisCache := cache.NewRedisCache(
		cache.RedisCacheConfig{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			FixturesTTL: cfg.Redis.FixturesTTL,
			LiveTTL:     cfg.Redis.LiveTTL,
			StatsTTL:    cfg.Redis.StatsTTL,
		},
		logger,
	)
	defer redisCache.Close()

	// Test Redis connection
	if err := redisCache.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	// Create upstream clients
	sportmonksClient, err := sportmonks.NewClient(
		sportmonks.ClientConfig{
			BaseURL:      cfg.Sportmonks.BaseURL,
			APIToken:     cfg.Sportmonks.APIToken,
			Timeout:      cfg.Sportmonks.Timeout,
			Timezone:     cfg.Sportmonks.Timezone,
			RegionFilter: cfg.Sportmonks.RegionFilter,
		},
		logger,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Sportmonks client")
	}
	if !sportmonksClient.Configured() {
		logger.Warn().Msg("Sportmonks API token not set, fixture lists will be empty")
	}

	temperature := cfg.Gemini.Temperature
	geminiClient := gemini.NewClient(
		gemini.ClientConfig{
			BaseURL:     cfg.Gemini.BaseURL,
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Gemini.Model,
			Timeout:     cfg.Gemini.Timeout,
			Temperature: &temperature,
			SearchTool:  cfg.Gemini.SearchTool,
		},
		logger,
	)
	if !geminiClient.Configured() {
		logger.Warn().Msg("Gemini API key not set, analyses will use the fallback summary")
	}

	// Create Kafka publisher; a nil interface disables bet events
	var publisher service.EventPublisher
	if cfg.Kafka.Enabled && cfg.Kafka.PublishBetEvents {
		kafkaPublisher := messaging.NewKafkaPublisher(
			messaging.KafkaPublisherConfig{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.BetEventsTopic,
			},
			logger,
		)
		publisher = kafkaPublisher
		logger.Info().Str("topic", cfg.Kafka.BetEventsTopic).Msg("bet event publisher initialized")
	}

	// Create dashboard service layer
	dashboardService := service.NewDashboardService(
		sportmonksClient,
		geminiClient,
		redisCache,
		publisher,
		ledger.New(logger),
		service.Config{
			TopN:      cfg.Ranking.TopN,
			SaveDelay: cfg.Ledger.SaveDebounce,
		},
		logger,
	)
	logger.Info().Msg("dashboard service initialized")

	// Setup HTTP server routes
	router := httpHandler.NewRouter(
		httpHandler.RouterConfig{
			Dashboard:      httpHandler.NewDashboardHandler(dashboardService, logger),
			Proxy:          httpHandler.NewProxyHandler(sportmonksClient, geminiClient, logger),
			Ready:          redisCache.Ping,
			CORSOrigins:    cfg.Server.CORSOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		logger,
	)
	logger.Info().Msg("API routes registered")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	// Start Kafka consumer
	if cfg.Kafka.Enabled {
		consumer := messaging.NewKafkaConsumer(
			messaging.KafkaConsumerConfig{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.SettlementTopic,
				GroupID: cfg.Kafka.GroupID,
			},
			dashboardService,
			logger,
		)
		defer consumer.Close()

		g.Go(func() error {
			if err := consumer.Start(gctx); err != nil {
				return fmt.Errorf("kafka consumer: %w", err)
			}
			return nil
		})
	}

	// Start HTTP server
	g.Go(func() error {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Shut down on signal or on the first component failure
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("HTTP server shutdown failed")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("service stopped with error")
	}

	// Persist pending drafts before the publisher goes away
	dashboardService.Shutdown()
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close Kafka publisher")
		}
	}

	logger.Info().Msg("shutdown complete")
}

// configPath returns the config file location, overridable with CONFIG_PATH.
// A missing default file is not an error.
func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	const defaultPath = "config/config.yaml"
	if _, err := os.Stat(defaultPath); err != nil {
		return ""
	}
	return defaultPath
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set format
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "fixture-analyst").Logger()
}
