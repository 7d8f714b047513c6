// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/unclebandit/customer-bootstrap/internal/cache"
	"github.com/unclebandit/customer-bootstrap/internal/config"
	"github.com/unclebandit/customer-bootstrap/internal/controller"
	"github.com/unclebandit/customer-bootstrap/internal/db"
	"github.com/unclebandit/customer-bootstrap/internal/ingest"
	"github.com/unclebandit/customer-bootstrap/internal/logger"
	"github.com/unclebandit/customer-bootstrap/internal/queue"
	"github.com/unclebandit/customer-bootstrap/internal/repository"
	"github.com/unclebandit/customer-bootstrap/internal/service"
)

func main() {
	// Load .env
	envErr := godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	if envErr != nil {
		log.Warn().Msg("no .env file found, relying on OS environment variables")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	importService := &service.ImportService{
		CSVPath: cfg.Ingest.CSVPath,
		Policy:  policy(cfg.Ingest),
	}

	// Optional Redis cache
	if cfg.Redis.Enabled() {
		client := cache.NewRedisClient(cfg.Redis)
		defer client.Close()

		customerCache := &cache.RedisCustomerCache{Client: client, TTL: cfg.Redis.CacheTTL}
		if err := customerCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr()).Msg("redis not reachable")
		} else {
			log.Info().Str("addr", cfg.Redis.Addr()).Msg("redis connected")
		}
		importService.Cache = customerCache
	}

	// Optional Postgres store
	if cfg.DB.Enabled() {
		conn, err := openStore(cfg.DB)
		if err != nil {
			return err
		}
		defer conn.Close()
		importService.CustomerRepo = &repository.CustomerRepository{DB: conn}
	}

	customerService := &service.CustomerService{
		CustomerRepo: importService.CustomerRepo,
		Cache:        importService.Cache,
	}

	bootstrap := &service.Bootstrap{Importer: importService, Config: cfg}
	bootstrap.Run(ctx)

	q, closeQueue, err := newQueue(cfg)
	if err != nil {
		return err
	}
	defer closeQueue()

	// With the in-memory queue jobs run inside the server process.
	if _, ok := q.(*queue.InMemoryQueue); ok {
		worker := service.NewWorker(importService)
		if err := q.Subscribe(queue.TopicImports, worker.Handle); err != nil {
			return err
		}
	}

	router := controller.NewRouter(cfg, controller.Controllers{
		Health:   &controller.HealthController{CSVPath: cfg.Ingest.CSVPath},
		Time:     &controller.TimeController{TimeService: &service.TimeService{}},
		Import:   &controller.ImportController{Queue: q, Defaults: cfg.Ingest},
		Customer: &controller.CustomerController{Customers: customerService},
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort("", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func policy(cfg config.IngestConfig) ingest.MalformedRowPolicy {
	if cfg.SkipMalformed {
		return ingest.SkipMalformed
	}
	return ingest.FailFast
}

func openStore(cfg config.DBConfig) (*sql.DB, error) {
	conn, err := db.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("database connected")
	return conn, nil
}

// newQueue returns a RabbitMQ queue when AMQP_URL is set and an in-memory
// queue otherwise.
func newQueue(cfg config.Config) (queue.Queue, func(), error) {
	if cfg.AMQPURL == "" {
		log.Info().Msg("using in-memory import queue")
		return queue.NewInMemoryQueue(), func() {}, nil
	}

	q, err := queue.NewAMQPQueue(cfg.AMQPURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	log.Info().Msg("using rabbitmq import queue")
	return q, func() {
		if err := q.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close rabbitmq connection")
		}
	}, nil
}
