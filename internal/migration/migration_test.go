package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	fs := fstest.MapFS{}
	for name, content := range files {
		fs[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fs
}

func TestReadMigrations(t *testing.T) {
	r := NewRunner(nil, migrationFS(map[string]string{
		"002_add_notes.sql": "ALTER TABLE items ADD COLUMN notes TEXT;",
		"001_initial.sql":   "CREATE TABLE items (id TEXT PRIMARY KEY);",
		"README.md":         "not a migration",
	}))

	migrations, err := r.ReadMigrations()
	if err != nil {
		t.Fatalf("ReadMigrations failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("migration count = %d, want 2", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "initial" {
		t.Errorf("first migration = %d %q, want 1 initial", migrations[0].Version, migrations[0].Name)
	}
	if migrations[1].Version != 2 || migrations[1].Name != "add_notes" {
		t.Errorf("second migration = %d %q, want 2 add_notes", migrations[1].Version, migrations[1].Name)
	}
}

func TestReadMigrations_InvalidFilename(t *testing.T) {
	r := NewRunner(nil, migrationFS(map[string]string{
		"initial.sql": "CREATE TABLE items (id TEXT PRIMARY KEY);",
	}))
	if _, err := r.ReadMigrations(); err == nil {
		t.Error("expected error for filename without version prefix")
	}
}

func TestReadMigrations_DuplicateVersion(t *testing.T) {
	r := NewRunner(nil, migrationFS(map[string]string{
		"001_first.sql":  "SELECT 1;",
		"001_second.sql": "SELECT 1;",
	}))
	if _, err := r.ReadMigrations(); err == nil {
		t.Error("expected error for duplicate migration version")
	}
}

func TestApply(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, migrationFS(map[string]string{
		"001_initial.sql":   "CREATE TABLE items (id TEXT PRIMARY KEY);",
		"002_add_notes.sql": "ALTER TABLE items ADD COLUMN notes TEXT;",
	}))

	version, err := r.CurrentVersion()
	if err != nil || version != 0 {
		t.Fatalf("CurrentVersion on fresh db = %d, %v; want 0", version, err)
	}

	applied, err := r.Apply(nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	version, err = r.CurrentVersion()
	if err != nil || version != 2 {
		t.Errorf("CurrentVersion after apply = %d, %v; want 2", version, err)
	}

	// Second run is a no-op.
	applied, err = r.Apply(nil)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("applied on up-to-date db = %d, want 0", applied)
	}

	if _, err := db.Exec("INSERT INTO items (id, notes) VALUES ('a', 'b')"); err != nil {
		t.Errorf("migrated schema unusable: %v", err)
	}
}

func TestApply_FailedMigrationKeepsVersion(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, migrationFS(map[string]string{
		"001_initial.sql": "CREATE TABLE items (id TEXT PRIMARY KEY);",
		"002_broken.sql":  "THIS IS NOT SQL;",
	}))

	applied, err := r.Apply(nil)
	if err == nil {
		t.Fatal("expected broken migration to fail")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1 (first migration succeeded)", applied)
	}

	version, err := r.CurrentVersion()
	if err != nil || version != 1 {
		t.Errorf("CurrentVersion after failure = %d, %v; want 1", version, err)
	}
}

func TestApply_NewerDatabaseVersion(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, migrationFS(map[string]string{
		"001_initial.sql": "CREATE TABLE items (id TEXT PRIMARY KEY);",
	}))
	if _, err := r.Apply(nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("failed to bump version: %v", err)
	}

	if _, err := r.Apply(nil); err == nil {
		t.Error("expected error when database schema is newer than supported")
	}
}
