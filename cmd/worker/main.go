package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/unclebandit/customer-bootstrap/internal/cache"
	"github.com/unclebandit/customer-bootstrap/internal/config"
	"github.com/unclebandit/customer-bootstrap/internal/db"
	"github.com/unclebandit/customer-bootstrap/internal/ingest"
	"github.com/unclebandit/customer-bootstrap/internal/logger"
	"github.com/unclebandit/customer-bootstrap/internal/queue"
	"github.com/unclebandit/customer-bootstrap/internal/repository"
	"github.com/unclebandit/customer-bootstrap/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	if envErr != nil {
		log.Warn().Msg("no .env file found, relying on OS environment variables")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.AMQPURL == "" {
		log.Fatal().Msg("AMQP_URL is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	importer, cleanup, err := newImporter(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up importer")
	}
	defer cleanup()

	// Connect to RabbitMQ
	q, err := queue.NewAMQPQueue(cfg.AMQPURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer q.Close()

	worker := service.NewWorker(importer)
	if err := q.Subscribe(queue.TopicImports, worker.Handle); err != nil {
		log.Fatal().Err(err).Msg("failed to subscribe")
	}

	log.Info().Str("queue", queue.TopicImports).Msg("worker running, waiting for jobs")
	<-ctx.Done()
	log.Info().Msg("worker stopping")
}

// newImporter builds the import service with whichever stores are configured.
func newImporter(ctx context.Context, cfg config.Config) (*service.ImportService, func(), error) {
	svc := &service.ImportService{
		CSVPath: cfg.Ingest.CSVPath,
		Policy:  ingest.FailFast,
	}
	if cfg.Ingest.SkipMalformed {
		svc.Policy = ingest.SkipMalformed
	}

	var closers []func() error
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.Redis.Enabled() {
		client := cache.NewRedisClient(cfg.Redis)
		closers = append(closers, client.Close)
		c := &cache.RedisCustomerCache{Client: client, TTL: cfg.Redis.CacheTTL}
		if err := c.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr()).Msg("redis not reachable")
		}
		svc.Cache = c
	}

	if cfg.DB.Enabled() {
		conn, err := db.Open(cfg.DB)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		closers = append(closers, conn.Close)
		if err := db.Migrate(conn); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		svc.CustomerRepo = &repository.CustomerRepository{DB: conn}
	}

	return svc, cleanup, nil
}
