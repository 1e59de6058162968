package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/moatezLita/salesGPT/internal/config"
	"github.com/moatezLita/salesGPT/internal/database"
)

// NewStore connects the backend selected by cfg.Driver.
func NewStore(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("store")
	logger.Info("creating store", zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoURL)
		if err != nil {
			return nil, err
		}
		store, err := NewMongoStore(ctx, client, cfg.Database, logger)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return store, nil
	case config.DriverPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		store, err := NewPostgresStore(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	case config.DriverMemory:
		logger.Warn("using in-memory store, records are lost on restart")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}
