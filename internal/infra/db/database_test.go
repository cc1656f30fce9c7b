package db

import (
	"testing"

	"github.com/expense-tracker/backend/config"
)

func TestOpen_SQLiteMemory(t *testing.T) {
	database, err := Open(&config.DatabaseConfig{Driver: "sqlite", URL: ":memory:", MaxOpenConns: 10})
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if !database.HealthCheck() {
		t.Error("expected a healthy connection")
	}

	sqlDB, err := database.DB().DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("expected in-memory database pinned to one connection, got %d", got)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(&config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Error("expected an error for an unknown driver")
	}
}

func TestPostgresDialector_DriverSelection(t *testing.T) {
	tests := []struct {
		sqlDriver string
		want      string
	}{
		{"", ""},
		{"pgx", ""},
		{"postgres", "postgres"},
	}
	for _, tt := range tests {
		t.Run(tt.sqlDriver, func(t *testing.T) {
			d := postgresDialector(&config.DatabaseConfig{SQLDriver: tt.sqlDriver, URL: "postgres://localhost/x"})
			if d.Config.DriverName != tt.want {
				t.Errorf("expected driver %q, got %q", tt.want, d.Config.DriverName)
			}
		})
	}
}
