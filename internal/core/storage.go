package core

import (
	"context"
	"fmt"
	"os"

	"pgmanager/internal/infra/persistence/memory"
	"pgmanager/internal/infra/persistence/postgres"
	"pgmanager/internal/infra/persistence/sqlite"
	"pgmanager/pkg/domain"
)

// StorageDriver identifies a concrete slot store implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// OpenSlotStore selects a backend using environment variables.
// Defaults to sqlite when unset. Backends holding connections implement io.Closer.
//
//	PGMANAGER_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	PGMANAGER_SQLITE_PATH: path to sqlite file (default ./pgmanager.db)
//	PGMANAGER_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenSlotStore(ctx context.Context) (domain.SlotStore, error) {
	driver := os.Getenv("PGMANAGER_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		st, err := sqlite.NewStore(os.Getenv("PGMANAGER_SQLITE_PATH"))
		if err != nil {
			return nil, err
		}
		return st, nil
	case StoragePostgres:
		st, err := postgres.NewStore(ctx, os.Getenv("PGMANAGER_POSTGRES_DSN"))
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
