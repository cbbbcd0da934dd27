package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-MarketplaceService/internal/config"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/cache"
	"github.com/m04kA/SMC-MarketplaceService/pkg/logger"
)

const cacheKeyPrefix = "marketplace:"

// loadConfig загружает конфигурацию и создает логгер
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Info("Configuration loaded from %s", cfgFile)
	return cfg, log, nil
}

// openDB подключается к PostgreSQL и настраивает пул соединений
func openDB(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)
	return db, nil
}

// openCache подключается к Redis, если он включен
// При выключенном Redis возвращается nil кэш: чтения промахиваются, записи игнорируются
func openCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*cache.Cache, *goredis.Client, error) {
	if !cfg.Enabled {
		log.Info("Redis cache disabled")
		return nil, nil, nil
	}

	rdb, err := cache.NewRedis(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	log.Info("Connected to Redis at %s (db=%d)", cfg.Addr, cfg.DB)
	return cache.New(rdb, cacheKeyPrefix, time.Duration(cfg.TTLSeconds)*time.Second), rdb, nil
}
