// Package bootstrap connects the process-wide runtime dependencies.
package bootstrap

import (
	"fmt"

	"classifieds/internal/cache"
	"classifieds/internal/config"
	"classifieds/internal/database"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and, when configured, Redis.
// The Redis client is nil when caching is disabled or unreachable.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return db, cache.GetClient(), nil
}
