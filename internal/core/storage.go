package core

import (
	"fmt"
	"os"

	"ensemblecore/internal/infra/persistence/memory"
	"ensemblecore/internal/infra/persistence/postgres"
	"ensemblecore/internal/infra/persistence/sqlite"
)

// StorageDriver identifies a concrete snapshot storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// OpenSnapshotStore selects a backend using environment variables.
// Defaults to sqlite when unset.
//
//	ENSEMBLECORE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	ENSEMBLECORE_SQLITE_PATH: path to sqlite file (default ./ensemblecore.db)
//	ENSEMBLECORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenSnapshotStore() (SnapshotStore, error) {
	driver := os.Getenv("ENSEMBLECORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		return sqlite.NewStore(os.Getenv("ENSEMBLECORE_SQLITE_PATH"))
	case StoragePostgres:
		return postgres.NewStore(os.Getenv("ENSEMBLECORE_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
