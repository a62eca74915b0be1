package database

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	adapterrepo "github.com/eslsoft/lingualatina/internal/adapter/repository"
	"github.com/eslsoft/lingualatina/internal/infrastructure/config"
	"github.com/eslsoft/lingualatina/internal/repository"
)

// NewSlotStore builds the slot store selected by storage.driver. The cleanup closes its connection.
func NewSlotStore(cfg *config.Config, logger logrus.FieldLogger) (repository.SlotStore, func(), error) {
	log := logger.WithField("driver", cfg.StorageDriver())
	switch cfg.StorageDriver() {
	case config.DriverMemory:
		log.Warn("memory storage selected, state is lost on exit")
		return adapterrepo.NewMemoryStore(), func() {}, nil

	case config.DriverFile:
		store, err := adapterrepo.NewFileStore(afero.NewOsFs(), cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("path", cfg.Storage.Path).Debug("file storage ready")
		return store, func() {}, nil

	case config.DriverSQLite:
		if cfg.Storage.DSN == "" {
			if err := os.MkdirAll(cfg.Storage.Path, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
		db, cleanup, err := NewSQLiteDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		store, err := adapterrepo.NewSQLStore(context.Background(), db)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		return store, cleanup, nil

	case config.DriverPostgres:
		pool, cleanup, err := NewPostgresPool(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		store, err := adapterrepo.NewPostgresStore(context.Background(), pool)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		return store, cleanup, nil

	case config.DriverRedis:
		rdb, cleanup, err := NewRedisClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		return adapterrepo.NewRedisStore(rdb, cfg.Storage.KeyPrefix), cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
