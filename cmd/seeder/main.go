// cmd/seeder/main.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/unclebandit/customer-bootstrap/internal/config"
	"github.com/unclebandit/customer-bootstrap/internal/db"
	"github.com/unclebandit/customer-bootstrap/internal/ingest"
	"github.com/unclebandit/customer-bootstrap/internal/logger"
	"github.com/unclebandit/customer-bootstrap/internal/model"
	"github.com/unclebandit/customer-bootstrap/internal/queue"
	"github.com/unclebandit/customer-bootstrap/internal/repository"
	"github.com/unclebandit/customer-bootstrap/internal/service"
)

func main() {
	godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("seeder failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "seeder",
		Usage: "Import customers from a CSV file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Path to the customer CSV file",
				EnvVars: []string{"CSV_FILE_PATH"},
				Value:   "data/customers.csv",
			},
			&cli.StringFlag{
				Name:    "country",
				Aliases: []string{"c"},
				Usage:   "Only import customers from this country (empty imports all)",
				EnvVars: []string{"INGEST_COUNTRY"},
				Value:   "chile",
			},
			&cli.IntFlag{
				Name:    "max",
				Aliases: []string{"n"},
				Usage:   "Maximum number of data rows to read (0 for no limit)",
				EnvVars: []string{"INGEST_MAX_COUNT"},
				Value:   10,
			},
			&cli.BoolFlag{
				Name:    "skip-malformed",
				Usage:   "Skip rows with too few fields instead of failing",
				EnvVars: []string{"INGEST_SKIP_MALFORMED"},
			},
			&cli.BoolFlag{
				Name:  "enqueue",
				Usage: "Publish an import job to RabbitMQ (AMQP_URL) instead of importing inline",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "info",
			},
		},
		Before: func(c *cli.Context) error {
			logger.InitWithWriter(c.String("log-level"), os.Stderr)
			return nil
		},
		Action: seedCommand,
	}
}

func seedCommand(c *cli.Context) error {
	if c.Int("max") < 0 {
		return fmt.Errorf("--max must not be negative, got %d", c.Int("max"))
	}

	job := model.ImportJob{
		ID:          uuid.NewString(),
		Country:     c.String("country"),
		MaxCount:    c.Int("max"),
		RequestedAt: time.Now(),
	}

	cfg := config.Load()

	if c.Bool("enqueue") {
		return enqueue(cfg.AMQPURL, job)
	}

	svc := &service.ImportService{
		CSVPath: c.String("file"),
		Policy:  ingest.FailFast,
	}
	if c.Bool("skip-malformed") {
		svc.Policy = ingest.SkipMalformed
	}

	if cfg.DB.Enabled() {
		conn, err := db.Open(cfg.DB)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer conn.Close()
		if err := db.Migrate(conn); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		svc.CustomerRepo = &repository.CustomerRepository{DB: conn}
	} else {
		log.Warn().Msg("DB_HOST not set, customers will only be printed")
	}

	result, err := svc.Import(c.Context, job)
	if err != nil {
		return err
	}

	log.Info().
		Str("job_id", job.ID).
		Int("count", len(result.Customers)).
		Int("stored", result.Stored).
		Msg("seed finished")

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Customers)
}

func enqueue(url string, job model.ImportJob) error {
	if url == "" {
		return fmt.Errorf("--enqueue requires AMQP_URL")
	}

	q, err := queue.NewAMQPQueue(url)
	if err != nil {
		return err
	}
	defer q.Close()

	if err := q.Publish(queue.TopicImports, job); err != nil {
		return fmt.Errorf("publish import job: %w", err)
	}
	log.Info().Str("job_id", job.ID).Str("queue", queue.TopicImports).Msg("import job queued")
	return nil
}
