package daily

import (
	"context"
	"testing"
	"time"

	"github.com/taha3313/AssemblyEndgame/internal/db"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	ts := time.Date(2026, 3, 2, 5, 0, 0, 0, loc) // 2026-03-01 19:00 UTC
	if got := DateKey(ts); got != "2026-03-01" {
		t.Errorf("Expected 2026-03-01, got %s", got)
	}
}

func TestWordIndexDeterministic(t *testing.T) {
	day := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	a := WordIndex(day, "salt", 500)
	b := WordIndex(day.Add(3*time.Hour), "salt", 500)
	if a != b {
		t.Errorf("Same day gave different indexes: %d != %d", a, b)
	}
	if a < 0 || a >= 500 {
		t.Errorf("Index out of range: %d", a)
	}
	if WordIndex(day, "salt", 0) != 0 {
		t.Error("Empty pool should give index 0")
	}
}

func TestWordIndexVariesWithSalt(t *testing.T) {
	day := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	differ := false
	for _, salt := range []string{"a", "b", "c", "d", "e"} {
		if WordIndex(day, salt, 1000) != WordIndex(day, "z", 1000) {
			differ = true
		}
	}
	if !differ {
		t.Error("Expected salt to influence the index")
	}
}

func TestWord(t *testing.T) {
	day := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	pool := []string{"html", "css", "react"}
	w, i := Word(day, "salt", pool)
	if pool[i] != w {
		t.Errorf("Word %q does not match index %d", w, i)
	}
	if w, _ := Word(day, "salt", nil); w != "" {
		t.Errorf("Expected empty word from empty pool, got %q", w)
	}
}

func TestStore(t *testing.T) {
	conn, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	ctx := context.Background()
	st := NewStore(conn)
	date := "2026-10-14"

	played, err := st.AlreadyPlayed(ctx, "u1", date)
	if err != nil || played {
		t.Fatalf("Expected not played, got %v (err=%v)", played, err)
	}

	results := []Result{
		{UserID: "u1", Date: date, Won: true, WrongGuesses: 3, ElapsedMs: 1000},
		{UserID: "u2", Date: date, Won: true, WrongGuesses: 1, ElapsedMs: 9000},
		{UserID: "u3", Date: date, Won: true, WrongGuesses: 1, ElapsedMs: 2000},
		{UserID: "u4", Date: date, Won: false, WrongGuesses: 8, ElapsedMs: 500},
		{UserID: "u1", Date: date, Won: true, WrongGuesses: 0, ElapsedMs: 1}, // ignored
	}
	for _, r := range results {
		if err := st.InsertResult(ctx, r); err != nil {
			t.Fatalf("InsertResult failed: %v", err)
		}
	}

	if played, _ := st.AlreadyPlayed(ctx, "u1", date); !played {
		t.Error("Expected u1 to have played")
	}

	top, err := st.Leaderboard(ctx, date, 0)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	want := []string{"u3", "u2", "u1"}
	if len(top) != len(want) {
		t.Fatalf("Expected %d rows, got %+v", len(want), top)
	}
	for i, id := range want {
		if top[i].UserID != id {
			t.Errorf("Rank %d: expected %s, got %s", i+1, id, top[i].UserID)
		}
	}
	if top[2].WrongGuesses != 3 {
		t.Errorf("Duplicate insert should be ignored, got %+v", top[2])
	}
}
