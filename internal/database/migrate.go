package database

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"examcraft/internal/config"
	"examcraft/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationFiles embed.FS

// RunMigrations applies the embedded schema for the driver of db.
func RunMigrations(db *sqlx.DB) error {
	switch db.DriverName() {
	case config.DriverOracle:
		return runOracleMigrations(db)
	case config.DriverSQLite:
		return runSQLiteMigrations(db)
	default:
		return fmt.Errorf("no migrations for driver %q", db.DriverName())
	}
}

func runSQLiteMigrations(db *sqlx.DB) error {
	src, err := iofs.New(migrationFiles, "migrations/sqlite")
	if err != nil {
		return fmt.Errorf("could not open migration source: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, config.DriverSQLite, driver)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}
	// m.Close would also close db, which the caller still owns.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	version, dirty, _ := m.Version()
	logger.Get().Info("Migrations completed successfully", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Oracle has no golang-migrate driver, so the .up.sql files are applied in
// name order and recorded in schema_migrations.
func runOracleMigrations(db *sqlx.DB) error {
	appLogger := logger.Get()
	if _, err := db.Exec(`BEGIN
  EXECUTE IMMEDIATE 'CREATE TABLE schema_migrations (version VARCHAR2(255) PRIMARY KEY)';
EXCEPTION WHEN OTHERS THEN
  IF SQLCODE != -955 THEN RAISE; END IF;
END;`); err != nil {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}

	files, err := fs.ReadDir(migrationFiles, "migrations/oracle")
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}
	names := make([]string, 0, len(files))
	for _, file := range files {
		if strings.HasSuffix(file.Name(), ".up.sql") {
			names = append(names, file.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var applied int
		if err := db.Get(&applied, db.Rebind(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`), name); err != nil {
			return fmt.Errorf("could not check migration %s: %w", name, err)
		}
		if applied > 0 {
			continue
		}

		content, err := migrationFiles.ReadFile("migrations/oracle/" + name)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", name, err)
			}
		}
		if _, err := db.Exec(db.Rebind(`INSERT INTO schema_migrations (version) VALUES (?)`), name); err != nil {
			return fmt.Errorf("could not record migration %s: %w", name, err)
		}
		appLogger.Info("Executed migration", zap.String("file", name))
	}

	appLogger.Info("Migrations completed successfully")
	return nil
}

// SplitStatements splits a script on semicolons that end a line. Oracle rejects
// trailing semicolons and multiple statements per call.
func SplitStatements(script string) []string {
	var (
		stmts   []string
		current strings.Builder
	)
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			current.WriteString(strings.TrimSuffix(trimmed, ";"))
			stmts = append(stmts, current.String())
			current.Reset()
			continue
		}
		current.WriteString(trimmed)
		current.WriteString("\n")
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}
