package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupSQLiteStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fanous.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE daily_logs (
		date TEXT PRIMARY KEY,
		day_number INTEGER NOT NULL,
		data TEXT NOT NULL
	)`)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	for _, row := range []struct {
		date string
		day  int
	}{
		{"2026-02-19", 1},
		{"2026-02-20", 2},
	} {
		_, err = db.Exec("INSERT INTO daily_logs (date, day_number, data) VALUES (?, ?, '{}')", row.date, row.day)
		if err != nil {
			t.Fatalf("failed to insert row: %v", err)
		}
	}

	return path
}

func countLogs(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM daily_logs").Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}

func TestCreate(t *testing.T) {
	mgr := NewManager(setupSQLiteStore(t))

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Fatalf("backup file was not created: %s", backupPath)
	}

	if got := countLogs(t, backupPath); got != 2 {
		t.Errorf("expected 2 rows in backup, got %d", got)
	}
}

func TestCreateMissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("Create should fail when the store does not exist")
	}
}

func TestRotation(t *testing.T) {
	mgr := NewManager(setupSQLiteStore(t))

	for i := 0; i < MaxBackups+5; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(backups) != MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", MaxBackups, len(backups))
	}

	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at index %d", i)
		}
	}
}

func TestListEmpty(t *testing.T) {
	mgr := NewManager(setupSQLiteStore(t))

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}
}

func TestListInfo(t *testing.T) {
	mgr := NewManager(setupSQLiteStore(t))

	for i := 0; i < 3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}

	for _, b := range backups {
		if b.Path == "" {
			t.Error("backup path is empty")
		}
		if b.Size == 0 {
			t.Error("backup size is 0")
		}
		if b.Timestamp.IsZero() {
			t.Error("backup timestamp is zero")
		}
	}
}

func TestRestore(t *testing.T) {
	storePath := setupSQLiteStore(t)
	mgr := NewManager(storePath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	db, err := sql.Open("sqlite", storePath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if _, err := db.Exec("INSERT INTO daily_logs (date, day_number, data) VALUES ('2026-02-21', 3, '{}')"); err != nil {
		t.Fatalf("failed to insert row: %v", err)
	}
	db.Close()

	if got := countLogs(t, storePath); got != 3 {
		t.Fatalf("expected 3 rows before restore, got %d", got)
	}

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if got := countLogs(t, storePath); got != 2 {
		t.Errorf("expected 2 rows after restore, got %d", got)
	}
}

func TestRestoreSnapshotsCurrentStore(t *testing.T) {
	mgr := NewManager(setupSQLiteStore(t))

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	after, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(after) != len(before)+1 {
		t.Errorf("expected %d backups after restore, got %d", len(before)+1, len(after))
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	mgr := NewManager(setupSQLiteStore(t))

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := mgr.verify(backupPath); err != nil {
		t.Errorf("verify failed for valid backup: %v", err)
	}

	invalidPath := filepath.Join(mgr.BackupDir(), "invalid.db")
	if err := os.WriteFile(invalidPath, []byte("not a database"), 0600); err != nil {
		t.Fatalf("failed to create invalid file: %v", err)
	}
	if err := mgr.verify(invalidPath); err == nil {
		t.Error("verify should fail for garbage input")
	}
}

func TestUniqueFilenames(t *testing.T) {
	mgr := NewManager(setupSQLiteStore(t))

	paths := make(map[string]bool)
	for i := 0; i < 5; i++ {
		backupPath, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}

		filename := filepath.Base(backupPath)
		if paths[filename] {
			t.Errorf("duplicate backup filename: %s", filename)
		}
		paths[filename] = true
	}
}

func TestJSONStoreBackup(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "fanous.json")
	if err := os.WriteFile(storePath, []byte(`{"version":1,"daily_logs":{}}`), 0600); err != nil {
		t.Fatalf("failed to write store: %v", err)
	}

	mgr := NewManager(storePath)
	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("expected .json backup, got %s", backupPath)
	}

	if err := os.WriteFile(storePath, []byte(`{"version":1,"daily_logs":{"2026-02-19":{}}}`), 0600); err != nil {
		t.Fatalf("failed to rewrite store: %v", err)
	}
	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("failed to read store: %v", err)
	}
	if string(data) != `{"version":1,"daily_logs":{}}` {
		t.Errorf("store was not restored: %s", data)
	}
}
