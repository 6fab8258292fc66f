package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanafy/storefront/internal/core/domain"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRedisCartStoreRoundtrip(t *testing.T) {
	rdb := testRedis(t)
	store := NewRedisCartStore(rdb, time.Minute)
	ctx := context.Background()
	sessionID := "test-" + uuid.New().String()
	defer rdb.Del(ctx, cartKeyPrefix+sessionID)

	stock := 5
	cart := &domain.Cart{Items: []domain.CartItem{{
		Product: domain.Product{
			ID:       "p1",
			Name:     "lamp",
			Price:    decimal.NewFromInt(120),
			Discount: decimal.NewFromInt(10),
			Stock:    &stock,
			Category: "home",
		},
		Quantity: 2,
	}}}
	require.NoError(t, store.Save(ctx, sessionID, cart))

	loaded, err := store.Load(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "p1", loaded.Items[0].Product.ID)
	assert.Equal(t, 2, loaded.Items[0].Quantity)
	assert.True(t, loaded.Items[0].Product.Price.Equal(decimal.NewFromInt(120)))
	require.NotNil(t, loaded.Items[0].Product.Stock)
	assert.Equal(t, 5, *loaded.Items[0].Product.Stock)
}

func TestRedisCartStoreMissingSession(t *testing.T) {
	rdb := testRedis(t)
	store := NewRedisCartStore(rdb, time.Minute)

	cart, err := store.Load(context.Background(), "never-saved-"+uuid.New().String())
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestRedisCartStoreDelete(t *testing.T) {
	rdb := testRedis(t)
	store := NewRedisCartStore(rdb, time.Minute)
	ctx := context.Background()
	sessionID := "test-" + uuid.New().String()

	cart := &domain.Cart{Items: []domain.CartItem{{
		Product:  domain.Product{ID: "p1", Price: decimal.NewFromInt(10)},
		Quantity: 1,
	}}}
	require.NoError(t, store.Save(ctx, sessionID, cart))
	require.NoError(t, store.Delete(ctx, sessionID))

	loaded, err := store.Load(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}
