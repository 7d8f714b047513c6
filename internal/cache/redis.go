// Package cache keeps the latest import result per country in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/unclebandit/customer-bootstrap/internal/config"
	"github.com/unclebandit/customer-bootstrap/internal/model"
)

// NewRedisClient builds a client for cfg. Credentials are only used when a
// username is configured.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	opts := &redis.Options{
		Addr: cfg.Addr(),
		DB:   cfg.Database,
	}
	if strings.TrimSpace(cfg.Username) != "" {
		log.Info().Msg("setting Redis username and password")
		opts.Username = cfg.Username
		opts.Password = cfg.Password
	}
	return redis.NewClient(opts)
}

// CustomerCache stores import results keyed by country.
type CustomerCache interface {
	Put(ctx context.Context, country string, customers []model.Customer) error
	Get(ctx context.Context, country string) ([]model.Customer, error)
}

// RedisCustomerCache stores each result as a JSON array. A zero TTL keeps
// entries forever.
type RedisCustomerCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// Key returns the Redis key for country, normalized the same way the
// ingest country filter compares values.
func Key(country string) string {
	country = strings.ToLower(strings.TrimSpace(country))
	if country == "" {
		country = "all"
	}
	return "customers:" + country
}

func (c *RedisCustomerCache) Put(ctx context.Context, country string, customers []model.Customer) error {
	payload, err := json.Marshal(customers)
	if err != nil {
		return err
	}
	if err := c.Client.Set(ctx, Key(country), payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("failed to cache customers for %q: %w", country, err)
	}
	return nil
}

// Get returns nil, nil on a cache miss.
func (c *RedisCustomerCache) Get(ctx context.Context, country string) ([]model.Customer, error) {
	payload, err := c.Client.Get(ctx, Key(country)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var customers []model.Customer
	if err := json.Unmarshal(payload, &customers); err != nil {
		return nil, fmt.Errorf("corrupt cache entry %s: %w", Key(country), err)
	}
	return customers, nil
}

// Ping checks the connection.
func (c *RedisCustomerCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
