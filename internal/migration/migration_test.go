package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for name, content := range files {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return m
}

func TestCurrentVersion_FreshDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(nil))

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}
}

func TestApply_AppliesPendingInOrder(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql":  "CREATE TABLE a (id INTEGER);",
		"002_more.sql":  "CREATE TABLE b (id INTEGER);",
		"ignore_me.txt": "not sql",
	}))

	applied, err := runner.Apply()
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 migrations applied, got %d", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	// Second run is a no-op.
	applied, err = runner.Apply()
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 migrations on second run, got %d", applied)
	}
}

func TestApply_FailedMigrationRollsBack(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER);",
		"002_bad.sql":  "THIS IS NOT SQL;",
	}))

	if _, err := runner.Apply(); err == nil {
		t.Fatal("expected Apply to fail on invalid SQL")
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version to stop at 1, got %d", version)
	}
}

func TestRead_RejectsBadFilenames(t *testing.T) {
	db := setupTestDB(t)

	for _, files := range []map[string]string{
		{"noversion.sql": "SELECT 1;"},
		{"abc_name.sql": "SELECT 1;"},
	} {
		runner := NewRunner(db, migrationFS(files))
		if _, err := runner.Read(); err == nil {
			t.Errorf("expected Read to reject %v", files)
		}
	}
}

func TestValidateVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER);",
	}))

	// Behind before Apply.
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected validation failure before migrations run")
	}

	if _, err := runner.Apply(); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("expected validation to pass, got %v", err)
	}

	// Ahead when the database was written by a newer binary.
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (9)"); err != nil {
		t.Fatal(err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected validation failure for a newer schema")
	}
}
