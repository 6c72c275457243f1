package redis_test

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/storage/redis"
)

func unreachable() *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestStore_ConnectionErrors(t *testing.T) {
	ctx := context.Background()

	store := redis.NewWithClient(unreachable(), "")
	defer store.Close()

	var dst map[string]int

	found, err := store.Get(ctx, "document-counters:2026", &dst)
	require.Error(t, err)
	assert.False(t, found)
	assert.Contains(t, err.Error(), "document-counters:2026")

	err = store.Set(ctx, "document-counters:2026", map[string]int{"general": 1})
	require.Error(t, err)
}

func TestStore_EncodeErrorSkipsServer(t *testing.T) {
	store := redis.NewWithClient(unreachable(), "test:")
	defer store.Close()

	err := store.Set(context.Background(), "k", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoding k")
}

func TestNew_FailsWithoutServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := redis.New(ctx, redis.Config{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
