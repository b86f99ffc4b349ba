package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/vitalplan-backend/internal/logger"
	"github.com/yungbote/vitalplan-backend/internal/utils"
)

// SnapshotCache fronts the catalog and rule-table snapshot files with a
// Redis byte cache, so repeated scheduling runs skip the file reads.
type SnapshotCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewSnapshotCache(baseLog *logger.Logger) (*SnapshotCache, error) {
	log := baseLog.With("component", "SnapshotCache")
	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("SNAPSHOT_CACHE_TTL", 300, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &SnapshotCache{
		log: log,
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func (c *SnapshotCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn("Snapshot cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

func (c *SnapshotCache) Set(ctx context.Context, key string, data []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("Snapshot cache write failed", "key", key, "error", err)
	}
}

func (c *SnapshotCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
