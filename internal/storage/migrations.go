package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// SchemaVersion is the schema this build reads and writes.
const SchemaVersion = 2

// ErrNewerSchema is returned for databases written by a newer release.
var ErrNewerSchema = errors.New("database schema is newer than this release supports")

// schemaStep upgrades the database from Version-1 to Version.
type schemaStep struct {
	Name       string
	Statements []string
	Version    int
}

var schemaSteps = []schemaStep{
	{
		Version: 1,
		Name:    "documents table",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS documents (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
		},
	},
	{
		Version: 2,
		Name:    "refresh updated_at on write",
		Statements: []string{
			`CREATE TRIGGER IF NOT EXISTS documents_touch
			AFTER UPDATE OF value ON documents
			FOR EACH ROW
			BEGIN
				UPDATE documents SET updated_at = CURRENT_TIMESTAMP WHERE key = NEW.key;
			END`,
		},
	},
}

// Version reports the schema version recorded in the database.
func (s *SQLiteStorage) Version(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

// Migrate brings the schema up to SchemaVersion. Each step commits on its own.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	current, err := s.Version(ctx)
	if err != nil {
		return err
	}
	if current > SchemaVersion {
		return fmt.Errorf("%w: found %d, supported %d", ErrNewerSchema, current, SchemaVersion)
	}

	for _, step := range schemaSteps {
		if step.Version <= current {
			continue
		}
		if err := s.applyStep(ctx, step); err != nil {
			return err
		}
		slog.Debug("Applied schema step", "version", step.Version, "name", step.Name)
	}
	return nil
}

func (s *SQLiteStorage) applyStep(ctx context.Context, step schemaStep) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema step %d: %w", step.Version, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range step.Statements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema step %d (%s) failed: %w", step.Version, step.Name, err)
		}
	}
	// PRAGMA does not accept bound parameters.
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", step.Version)); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", step.Version, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema step %d: %w", step.Version, err)
	}
	return nil
}
