// Package config holds the explicit configuration values passed to every
// component. Only the cmd packages read the environment, through Load.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	LogLevel        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RateLimit       float64
	RateLimitBurst  int

	// APIKey is the pass key the bootstrap reports on. It is never logged.
	APIKey string

	Ingest IngestConfig
	Redis  RedisConfig
	DB     DBConfig

	// AMQPURL selects RabbitMQ for import jobs. Empty means in-process.
	AMQPURL string
}

// IngestConfig describes the customer CSV source and the default import job.
type IngestConfig struct {
	CSVPath       string
	Country       string
	MaxCount      int
	SkipMalformed bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Database int
	Username string
	Password string
	CacheTTL time.Duration
}

// Enabled reports whether a Redis host is configured.
func (c RedisConfig) Enabled() bool { return strings.TrimSpace(c.Host) != "" }

// Addr returns host:port.
func (c RedisConfig) Addr() string { return net.JoinHostPort(c.Host, strconv.Itoa(c.Port)) }

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

// Enabled reports whether a database host is configured.
func (c DBConfig) Enabled() bool { return strings.TrimSpace(c.Host) != "" }

// DSN returns a lib/pq connection URL.
func (c DBConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Load reads the configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ReadTimeout:     getEnvSeconds("READ_TIMEOUT_SEC", 15),
		WriteTimeout:    getEnvSeconds("WRITE_TIMEOUT_SEC", 15),
		IdleTimeout:     getEnvSeconds("IDLE_TIMEOUT_SEC", 60),
		ShutdownTimeout: getEnvSeconds("SHUTDOWN_TIMEOUT_SEC", 10),
		RateLimit:       getEnvFloat("RATE_LIMIT", 100),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 200),
		APIKey:          getEnv("API_PASS_KEY", ""),
		Ingest: IngestConfig{
			CSVPath:       getEnv("CSV_FILE_PATH", "data/customers.csv"),
			Country:       getEnv("INGEST_COUNTRY", "chile"),
			MaxCount:      getEnvInt("INGEST_MAX_COUNT", 10),
			SkipMalformed: getEnvBool("INGEST_SKIP_MALFORMED", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Database: getEnvInt("REDIS_DATABASE", 0),
			Username: getEnv("REDIS_USERNAME", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			CacheTTL: getEnvSeconds("CACHE_TTL_SEC", 3600),
		},
		DB: DBConfig{
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", ""),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		AMQPURL: getEnv("AMQP_URL", ""),
	}
}

// Validate checks values Load cannot repair.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Ingest.CSVPath) == "" {
		return fmt.Errorf("CSV_FILE_PATH must not be empty")
	}
	if c.Ingest.MaxCount < 0 {
		return fmt.Errorf("INGEST_MAX_COUNT must not be negative, got %d", c.Ingest.MaxCount)
	}
	if c.RateLimit <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT and RATE_LIMIT_BURST must be positive")
	}
	if c.Redis.Enabled() && (c.Redis.Port <= 0 || c.Redis.Port > 65535) {
		return fmt.Errorf("REDIS_PORT out of range: %d", c.Redis.Port)
	}
	if c.Redis.Database < 0 {
		return fmt.Errorf("REDIS_DATABASE must not be negative, got %d", c.Redis.Database)
	}
	if c.DB.Enabled() && c.DB.Name == "" {
		return fmt.Errorf("DB_NAME is required when DB_HOST is set")
	}
	return nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if iv, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return iv
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if fv, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return fv
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if bv, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return bv
		}
	}
	return def
}

func getEnvSeconds(key string, def int) time.Duration {
	return time.Duration(getEnvInt(key, def)) * time.Second
}
