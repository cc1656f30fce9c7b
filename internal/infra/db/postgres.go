package db

import (
	// registers the "postgres" database/sql driver used when SQLDriver is "postgres"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"

	"github.com/expense-tracker/backend/config"
)

// NewPostgresConnection creates a new PostgreSQL database connection. The
// gorm dialect talks through pgx unless cfg.SQLDriver selects lib/pq.
func NewPostgresConnection(cfg *config.DatabaseConfig) (*Database, error) {
	return open(postgresDialector(cfg), cfg)
}

func postgresDialector(cfg *config.DatabaseConfig) *postgres.Dialector {
	pgCfg := postgres.Config{DSN: cfg.URL}
	if cfg.SQLDriver == "postgres" {
		pgCfg.DriverName = "postgres"
	}
	return postgres.New(pgCfg).(*postgres.Dialector)
}
