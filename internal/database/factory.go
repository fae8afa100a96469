package database

import (
	"fmt"
	"path/filepath"

	"rsalab-go/internal/config"
	"rsalab-go/internal/lab"
)

// DatabaseFileName is the name of the session database file inside the
// configured data directory.
const DatabaseFileName = "rsalab.db"

// NewDatabaseFromConfig creates a Database implementation based on the
// database config type. The schema is migrated to the latest version.
func NewDatabaseFromConfig(cfg config.DatabaseConfig) (lab.Database, error) {
	var (
		db  *SQLiteDatabase
		err error
	)
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		db, err = NewSQLiteDatabase(filepath.Join(cfg.DataDir, DatabaseFileName))
	case "memory":
		db, err = NewSQLiteDatabase(":memory:")
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database schema: %w", err)
	}
	return db, nil
}
