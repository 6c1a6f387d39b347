// file: service/cache.go

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ICacheClient defines the contract for a cache client.
// This abstraction allows us to decouple the services from a concrete
// Redis implementation, enabling easier testing and future flexibility.
type ICacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// reportCacheKey is the cache slot for an account's unfiltered transaction
// report. The ledger service invalidates it on every posting.
func reportCacheKey(accountID int) string {
	return fmt.Sprintf("report:%d", accountID)
}
