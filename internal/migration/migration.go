package migration

import (
	"context"

	"gohappy/internal"
	"gohappy/internal/errors"

	"github.com/jmoiron/sqlx"
)

var logger = internal.DefaultLogger.With("Migration")

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Statements returns the schema statements in execution order
func Statements() []string {
	return []string{
		createSnapshotsTable,
		createRecordsTable,
		createIndexes,
	}
}

// Run executes all database migrations in the correct order. Every statement is idempotent.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range Statements() {
		logger.Debug("running migration %03d", i+1)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.DatabaseError("failed to run migration", err)
		}
	}
	logger.Info("schema at version %s", r.version)
	return nil
}

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS dataset_snapshots (
	id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	source TEXT NOT NULL DEFAULT '',
	checksum CHAR(64) NOT NULL,
	record_count INTEGER NOT NULL,
	country_count INTEGER NOT NULL,
	first_year INTEGER NOT NULL,
	last_year INTEGER NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
)`

const createRecordsTable = `
CREATE TABLE IF NOT EXISTS happiness_records (
	snapshot_id UUID NOT NULL REFERENCES dataset_snapshots(id) ON DELETE CASCADE,
	country_name VARCHAR(255) NOT NULL,
	country_code CHAR(3),
	region VARCHAR(255),
	year INTEGER NOT NULL,
	life_ladder DOUBLE PRECISION,
	log_gdp DOUBLE PRECISION,
	social_support DOUBLE PRECISION,
	life_expectancy DOUBLE PRECISION,
	freedom DOUBLE PRECISION,
	generosity DOUBLE PRECISION,
	corruption DOUBLE PRECISION,
	positive_affect DOUBLE PRECISION,
	negative_affect DOUBLE PRECISION,
	PRIMARY KEY (snapshot_id, country_name, year)
)`

const createIndexes = `
CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON dataset_snapshots(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_records_snapshot_year ON happiness_records(snapshot_id, year)`
