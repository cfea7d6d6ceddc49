package container

import (
	"context"
	"fmt"

	"gohappy/adapters/excel"
	"gohappy/adapters/postgres"
	"gohappy/app"
	"gohappy/internal"
	"gohappy/internal/config"
	"gohappy/internal/errors"
	"gohappy/internal/migration"
	"gohappy/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var logger = internal.DefaultLogger.With("Container")

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	DatasetRepo ports.DatasetRepository

	// Dataset access
	Source   ports.DatasetSource
	Provider *app.DatasetProvider

	// Services
	Dashboard *app.DashboardService
	Importer  *app.ImportService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return &Container{Config: cfg}, nil
}

// OpenDatabase connects to PostgreSQL with the configured pool limits
func OpenDatabase(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if !cfg.Enabled() {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", cfg.URL)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return db, nil
}

// InitWithDatabase migrates the schema and initializes components that require database access
func (c *Container) InitWithDatabase(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	c.DB = db

	if err := db.PingContext(ctx); err != nil {
		return errors.DatabaseError("database connection test failed", err)
	}

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		return errors.Wrap(err, "database migration failed")
	}

	c.DatasetRepo = postgres.NewDatasetRepository(db)
	c.Importer = app.NewImportService(c.DatasetRepo)
	logger.Info("database initialized")
	return nil
}

// InitServices wires the dataset source named by the configuration and the dashboard over it
func (c *Container) InitServices() error {
	switch c.Config.Data.Source {
	case config.SourcePostgres:
		if c.DatasetRepo == nil {
			return errors.ConfigInvalid("DATA_SOURCE=postgres needs an initialized database")
		}
		c.Source = app.NewRepositorySource(c.DatasetRepo)
		logger.Info("dataset source: latest PostgreSQL snapshot")
	default:
		c.Source = excel.NewFileSource(c.Config.Data.File)
		logger.Info("dataset source: %s", c.Config.Data.File)
	}

	c.Provider = app.NewDatasetProvider(c.Source)
	c.Dashboard = app.NewDashboardService(c.Provider)
	return nil
}

// Shutdown releases the database connection
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
