package db

import (
	"github.com/glebarez/sqlite"

	"github.com/expense-tracker/backend/config"
)

// NewSQLiteConnection opens a pure-Go SQLite database for local runs. An
// in-memory database is pinned to a single connection so every query sees it.
func NewSQLiteConnection(cfg *config.DatabaseConfig) (*Database, error) {
	local := *cfg
	if isMemoryDSN(local.URL) {
		local.MaxOpenConns = 1
		local.MaxIdleConns = 1
		local.ConnMaxLifetime = 0
	}
	return open(sqlite.Open(local.URL), &local)
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || dsn == "file::memory:" || dsn == ""
}
