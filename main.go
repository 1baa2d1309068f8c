package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/logging"
	"foodgram/internal/middleware"
	"foodgram/internal/server"
	"foodgram/internal/services"
	"foodgram/internal/storage"
	"foodgram/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Open(database.Config{Driver: cfg.DatabaseDriver, DSN: cfg.DatabaseDSN})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate database")
	}

	images, err := newImageStore(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialise image storage")
	}

	// Events are optional; without a broker the service runs silently.
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Logger: logging.With("rabbitmq")})
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to initialise RabbitMQ client")
		}
		defer mqClient.Close()
		events = mqClient
		startEventLogger(mqClient)
	}

	throttle, closeThrottle := newThrottle(ctx, cfg)
	defer closeThrottle()

	app, _ := server.New(server.Options{
		Config:    cfg,
		DB:        db,
		Images:    images,
		Events:    events,
		Throttle:  throttle,
		AccessLog: true,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logging.Info().Str("port", cfg.AppPort).Msg("starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			logging.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	logging.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logging.Error().Err(err).Msg("error during shutdown")
	}
	logging.Info().Msg("server gracefully stopped")
}

func newImageStore(ctx context.Context, cfg *config.Config) (storage.ImageStore, error) {
	if cfg.StorageDriver == "s3" {
		client, err := storage.NewS3Client(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		return storage.NewS3Store(client, cfg.S3Bucket, cfg.AWSRegion, cfg.MediaURL), nil
	}
	return storage.NewLocalStore(cfg.MediaRoot, cfg.MediaURL), nil
}

// newThrottle prefers the shared Redis limiter and falls back to the
// in-process one when REDIS_URL is unset or unreachable.
func newThrottle(ctx context.Context, cfg *config.Config) (fiber.Handler, func()) {
	limits := middleware.RateLimitConfig{
		Window:    cfg.RateLimitWindow,
		Limit:     cfg.RateLimitMax,
		KeyPrefix: "foodgram:shortlink",
	}
	if cfg.RedisURL != "" {
		client, err := middleware.NewRedisClient(ctx, cfg.RedisURL)
		if err == nil {
			return middleware.NewRateLimiter(client, limits).Handler(), func() { client.Close() }
		}
		logging.Warn().Err(err).Msg("redis unavailable, using in-process rate limiter")
	}
	return middleware.LocalRateLimit(limits), func() {}
}

// startEventLogger records every recipe event. Exhaustion is logged at
// error level.
func startEventLogger(client *rabbitmq.Client) {
	err := client.Consume(rabbitmq.DefaultQueue, "#", func(env rabbitmq.Envelope) error {
		if env.Event == services.EventShortcodeExhausted {
			logging.Error().Str("event", env.Event).RawJSON("payload", env.Payload).Msg("short code space exhausted")
			return nil
		}
		logging.Info().Str("event", env.Event).RawJSON("payload", env.Payload).Msg("event received")
		return nil
	})
	if err != nil {
		logging.Error().Err(err).Msg("failed to start RabbitMQ consumer")
	}
}
