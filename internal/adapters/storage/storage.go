package storage

import (
	"context"
	"fmt"

	"virtual-pet/internal/adapters/storage/gormstore"
	mem "virtual-pet/internal/adapters/storage/memory"
	pg "virtual-pet/internal/adapters/storage/postgres"
	"virtual-pet/internal/domain/pets"
	"virtual-pet/internal/platform/config"
)

// Open elige el repositorio según la config y crea el esquema si hace falta.
// El closer libera la conexión (no-op en memory).
func Open(ctx context.Context, cfg config.StorageConfig) (pets.Repository, func() error, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := pg.Open(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return pg.NewPetsRepo(db), db.Close, nil

	case config.DriverGorm:
		db, sqlDB, err := gormstore.OpenPostgres(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := gormstore.EnsureSchema(ctx, db); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		return gormstore.NewPetsRepo(db), sqlDB.Close, nil

	case config.DriverMemory, "":
		return mem.NewPetRepo(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
