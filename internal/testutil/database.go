package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Holding table
		CREATE TABLE holding (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			code VARCHAR(6) NOT NULL UNIQUE,
			name VARCHAR(100) NOT NULL,
			nav FLOAT NOT NULL DEFAULT 0,
			estimate FLOAT NOT NULL DEFAULT 0,
			growth_percent FLOAT NOT NULL DEFAULT 0,
			update_time VARCHAR(20) NOT NULL DEFAULT '',
			nav_date VARCHAR(10) NOT NULL DEFAULT '',
			shares FLOAT NOT NULL DEFAULT 0,
			cost_basis FLOAT NOT NULL DEFAULT 0,
			source VARCHAR(16) NOT NULL DEFAULT 'manual',
			broker_nav FLOAT,
			broker_import_time VARCHAR(20),
			look_through_estimate FLOAT,
			look_through_growth FLOAT,
			accumulated_nav FLOAT,
			accumulated_nav_date VARCHAR(10),
			return_1m FLOAT,
			return_3m FLOAT,
			return_6m FLOAT,
			return_1y FLOAT,
			nav_updated BOOLEAN,
			nav_update_growth FLOAT,
			nav_update_date VARCHAR(10),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Settings table
		CREATE TABLE setting (
			key VARCHAR(64) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := db.Exec(schema)
	return err
}
