package repository

import (
	"context"
	"fmt"

	"applauncher-backend/config"
	"applauncher-backend/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Store is a backend serving both criteria sets and selections
type Store interface {
	CriteriaRepository
	SelectionRepository
}

// Open connects the configured criteria store. The returned func releases its resources.
func Open(ctx context.Context, cfg config.StorageConfig, accessKey, secretKey string, logger *zap.Logger) (Store, func(), error) {
	if cfg.Type != "postgres" {
		blobs, err := storage.NewStorage(ctx, storage.ConfigFrom(cfg, accessKey, secretKey))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		return NewFileCriteriaRepository(blobs, logger), func() {}, nil
	}

	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is required for postgres storage")
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := NewPostgresCriteriaRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repo, pool.Close, nil
}
