package db

import (
	"path/filepath"
	"testing"
)

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "endgame.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := Migrate(db); err != nil {
			t.Fatalf("Migrate run %d failed: %v", i+1, err)
		}
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n); err != nil {
		t.Fatalf("Count migrations: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 recorded migrations, got %d", n)
	}

	for _, table := range []string{"users", "results", "daily_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %s: %v", table, err)
		}
	}
}

func TestForeignKeysOnEveryConnection(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "fk.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()
	// No idle pool: each query dials a fresh connection.
	db.SetMaxIdleConns(0)

	for i := 0; i < 3; i++ {
		var on int
		if err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&on); err != nil {
			t.Fatalf("Query %d: %v", i, err)
		}
		if on != 1 {
			t.Errorf("Connection %d: foreign keys off", i)
		}
	}
}

func TestFileDSNWithQuery(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "q.db") + "?cache=private"
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open(%q) failed: %v", dsn, err)
	}
	defer db.Close()
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	var busy int
	if err := db.QueryRow(`PRAGMA busy_timeout`).Scan(&busy); err != nil {
		t.Fatalf("busy_timeout: %v", err)
	}
	if busy != 5000 {
		t.Errorf("Expected busy timeout 5000, got %d", busy)
	}
}

func TestWithParams(t *testing.T) {
	tests := []struct{ in, want string }{
		{"./data/endgame.db", "./data/endgame.db?" + connParams},
		{"file:x.db?cache=shared", "file:x.db?cache=shared&" + connParams},
	}
	for _, tt := range tests {
		if got := withParams(tt.in); got != tt.want {
			t.Errorf("withParams(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
