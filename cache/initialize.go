package cache

import (
	"os"

	utilscache "github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"

	"storefront/config"
)

// InitializeCache connects the configured cache (in-process memory or Redis)
func InitializeCache(cfg config.CacheConfig) utilscache.Cache {
	c, err := utilscache.New(utilscache.Config{
		Type:          cfg.Type,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Error("Failed to initialize cache:", zap.Error(err), zap.String("type", cfg.Type))
		os.Exit(1)
	}
	logger.Info("Cache initialized", zap.String("type", cfg.Type))
	return c
}
