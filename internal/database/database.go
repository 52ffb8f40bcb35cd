package database

import (
	"context"
	"fmt"

	"examcraft/internal/config"
	"examcraft/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

func init() {
	// go-ora expects :name placeholders; sqlx does not know the driver name.
	sqlx.BindDriver(config.DriverOracle, sqlx.NAMED)
}

// NewDB opens the store selected by cfg.DB.Driver.
func NewDB(cfg *config.Config) (*sqlx.DB, error) {
	switch cfg.DB.Driver {
	case config.DriverOracle:
		return NewSQLXOracleDB(cfg.GetDSN())
	case config.DriverSQLite, "":
		return NewSQLiteDB(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}

func NewSQLXOracleDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(config.DriverOracle, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Oracle database: %w", err)
	}
	logger.Get().Info("Successfully connected to Oracle database")
	return db, nil
}

// NewSQLiteDB opens an embedded database file (or ":memory:").
func NewSQLiteDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(config.DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)
	logger.Get().Info("Successfully opened SQLite database", zap.String("dsn", dsn))
	return db, nil
}

// Ping reports whether the store is reachable.
func Ping(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	return db.PingContext(ctx)
}
