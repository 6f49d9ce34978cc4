package state

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// prepareGoose points goose at the embedded migration files. Goose
// keeps package-level state, so each entry point calls this first.
func prepareGoose() error {
	goose.SetBaseFS(migrationFiles)
	// Keep goose's progress output out of the CLI's stdout/stderr.
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to select sqlite dialect: %w", err)
	}
	return nil
}

// Migrate brings the run history schema up to date, applying any
// migration files not yet recorded in the goose version table.
func (s *SQLiteStore) Migrate() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// GetMigrationVersion returns the schema version goose has recorded.
func (s *SQLiteStore) GetMigrationVersion() (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}
	if err := prepareGoose(); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(s.db)
}
