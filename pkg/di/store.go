package di

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"people-directory/domain/repositories"
	"people-directory/infrastructure/kvstore"
	"people-directory/infrastructure/postgres"
	"people-directory/infrastructure/redis"
	"people-directory/infrastructure/sqlite"
	"people-directory/pkg/config"
	"people-directory/pkg/logger"
)

// OpenStore connects the key-value store selected by STORE_DRIVER.
func OpenStore(ctx context.Context, cfg *config.Config) (repositories.KeyValueStore, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.StartupWarn("memory_store", "Using in-memory store, changes are lost on restart", nil)
		return kvstore.NewMemoryStore(), nil

	case config.StoreDriverSQLite:
		if dir := filepath.Dir(cfg.SQLite.Path); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		store, err := sqlite.NewKVStore(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		logger.Startup("sqlite_opened", "SQLite store opened", map[string]interface{}{"path": store.Path()})
		return store, nil

	case config.StoreDriverRedis:
		client := redis.NewRedisClient(redis.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		logger.Startup("redis_connected", "Redis connected", map[string]interface{}{"host": cfg.Redis.Host, "db": cfg.Redis.DB})
		return client, nil

	case config.StoreDriverPostgres:
		db, err := postgres.NewDatabase(postgres.DatabaseConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return nil, err
		}
		logger.Startup("db_connected", "Database connected", nil)
		return newPostgresStore(db, postgres.Migrate)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// newPostgresStore migrates db and wraps it. db is closed when migration fails.
func newPostgresStore(db *gorm.DB, migrate func(*gorm.DB) error) (repositories.KeyValueStore, error) {
	if err := migrate(db); err != nil {
		if cerr := postgres.Close(db); cerr != nil {
			logger.StartupWarn("db_close_failed", "Failed to close database after migration error", map[string]interface{}{"error": cerr.Error()})
		}
		return nil, err
	}
	logger.Startup("db_migrated", "Database migrated", nil)
	return postgres.NewKVStore(db), nil
}
