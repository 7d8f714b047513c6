package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/customer-bootstrap/internal/config"
	"github.com/unclebandit/customer-bootstrap/internal/model"
)

func newCache(t *testing.T, ttl time.Duration) (*RedisCustomerCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := NewRedisClient(config.RedisConfig{Host: mr.Host(), Port: mustPort(t, mr)})
	t.Cleanup(func() { client.Close() })

	return &RedisCustomerCache{Client: client, TTL: ttl}, mr
}

func mustPort(t *testing.T, mr *miniredis.Miniredis) int {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return port
}

func TestKey(t *testing.T) {
	assert.Equal(t, "customers:chile", Key(" Chile "))
	assert.Equal(t, "customers:all", Key(""))
}

func TestPutGet(t *testing.T) {
	c, mr := newCache(t, time.Hour)
	ctx := context.Background()
	customers := []model.Customer{{ID: "C001", FirstName: "Maria", Country: "Chile"}}

	require.NoError(t, c.Put(ctx, "Chile", customers))
	assert.True(t, mr.Exists("customers:chile"))
	assert.Equal(t, time.Hour, mr.TTL("customers:chile"))

	got, err := c.Get(ctx, "CHILE")
	require.NoError(t, err)
	assert.Equal(t, customers, got)
	assert.NoError(t, c.Ping(ctx))
}

func TestPut_EmptyResult(t *testing.T) {
	c, _ := newCache(t, 0)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "hungary", []model.Customer{}))

	got, err := c.Get(ctx, "hungary")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGet_Miss(t *testing.T) {
	c, _ := newCache(t, 0)

	got, err := c.Get(context.Background(), "peru")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGet_Corrupt(t *testing.T) {
	c, mr := newCache(t, 0)
	require.NoError(t, mr.Set("customers:peru", "not json"))

	_, err := c.Get(context.Background(), "peru")
	assert.ErrorContains(t, err, "corrupt cache entry customers:peru")
}

func TestNewRedisClient_Credentials(t *testing.T) {
	anonymous := NewRedisClient(config.RedisConfig{Host: "localhost", Port: 6379, Database: 3, Password: "ignored"})
	defer anonymous.Close()
	assert.Equal(t, "localhost:6379", anonymous.Options().Addr)
	assert.Equal(t, 3, anonymous.Options().DB)
	assert.Empty(t, anonymous.Options().Password)

	authed := NewRedisClient(config.RedisConfig{Host: "localhost", Port: 6379, Username: "app", Password: "secret"})
	defer authed.Close()
	assert.Equal(t, "app", authed.Options().Username)
	assert.Equal(t, "secret", authed.Options().Password)
}
