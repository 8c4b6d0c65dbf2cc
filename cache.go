package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// rdb is nil when REDIS_ADDR is unset; every helper below is a no-op then.
var rdb *redis.Client

const portfolioCacheTTL = 5 * time.Minute

func initCache() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}
	rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis unreachable, serving uncached", zap.Error(err))
		rdb = nil
	}
}

func portfolioCacheKey(profileID uint) string {
	return fmt.Sprintf("portfolio:%d", profileID)
}

func cacheGetPortfolio(ctx context.Context, profileID uint) ([]byte, bool) {
	if rdb == nil {
		return nil, false
	}
	b, err := rdb.Get(ctx, portfolioCacheKey(profileID)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func cacheSetPortfolio(ctx context.Context, profileID uint, body []byte) {
	if rdb == nil {
		return
	}
	if err := rdb.Set(ctx, portfolioCacheKey(profileID), body, portfolioCacheTTL).Err(); err != nil {
		logger.Warn("cache set failed", zap.Error(err))
	}
}

// cacheInvalidatePortfolio drops the cached public view after any write
// that can change it (save, soft delete, photo change).
func cacheInvalidatePortfolio(ctx context.Context, profileID uint) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, portfolioCacheKey(profileID)).Err(); err != nil {
		logger.Warn("cache invalidate failed", zap.Error(err))
	}
}
