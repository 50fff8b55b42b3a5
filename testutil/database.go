package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateKVDatabase creates a SQLite file holding a kv table pre-filled with values
func CreateKVDatabase(t *testing.T, values map[string]string) string {
	t.Helper()
	path := filepath.Join(CreateTempDir(t), "settings.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		t.Fatalf("Failed to create kv table: %v", err)
	}
	for k, v := range values {
		if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)`, k, v); err != nil {
			t.Fatalf("Failed to insert %s: %v", k, err)
		}
	}
	return path
}
