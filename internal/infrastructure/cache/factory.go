package cache

import (
	"fmt"

	"github.com/acp/web/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StoreFactory creates stores based on configuration
type StoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StoreFactoryOption is a functional option for configuring the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory store
// when Redis is disabled or unavailable. Default is true.
func WithInMemoryFallback(allow bool) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStoreFactory creates a new factory
func NewStoreFactory(cfg config.RedisConfig, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore returns a Redis store when Redis is enabled and reachable.
// Otherwise it falls back to an in-memory store if fallback is allowed.
func (f *StoreFactory) CreateStore() (Store, error) {
	if !f.redisConfig.Enabled {
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("redis is disabled and in-memory fallback is not allowed")
		}
		f.logger.Warn("Redis disabled, using in-memory store. Sessions will not survive a restart.")
		return NewInMemoryStore(), nil
	}

	store, err := NewRedisStore(f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis store", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for sessions but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory store. "+
		"Sessions will not be shared between instances.",
		zap.Error(err),
	)
	return NewInMemoryStore(), nil
}
