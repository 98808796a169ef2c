package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/dogmatch/assets"
	"github.com/robalobadob/dogmatch/internal/game"
)

func result(player string, correct int, at time.Time) game.Result {
	return game.Result{ID: player + at.Format("150405"), Player: player, Correct: correct, Total: 6, PlayedAt: at}
}

func collect(t *testing.T, s Store) []string {
	t.Helper()
	var out []string
	for line, err := range s.All(context.Background()) {
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		out = append(out, line)
	}
	return out
}

// backends returns a fresh instance of every Store implementation.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	sq, err := OpenSQLite(filepath.Join(dir, "db", "results.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(dir, "logs", "game_results.txt")),
		"sqlite": sq,
	}
}

func TestStoresEmptyThenOrdered(t *testing.T) {
	at := time.Date(2026, 3, 1, 14, 5, 9, 0, time.Local)
	r1 := result("Alice", 6, at)
	r2 := result("Bob", 2, at.Add(time.Minute))

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if got := collect(t, s); len(got) != 0 {
				t.Fatalf("expected empty history, got %v", got)
			}
			ctx := context.Background()
			if err := s.Append(ctx, r1); err != nil {
				t.Fatalf("append r1: %v", err)
			}
			if err := s.Append(ctx, r2); err != nil {
				t.Fatalf("append r2: %v", err)
			}

			want := []string{
				"Player: Alice | Score: 6/6 (100%) | Date: 2026-03-01 14:05:09",
				"Player: Bob | Score: 2/6 (33%) | Date: 2026-03-01 14:06:09",
			}
			for pass := 0; pass < 2; pass++ {
				got := collect(t, s)
				if len(got) != len(want) {
					t.Fatalf("pass %d: expected %d lines, got %v", pass, len(want), got)
				}
				for i := range want {
					if got[i] != want[i] {
						t.Fatalf("pass %d line %d: expected %q, got %q", pass, i, want[i], got[i])
					}
				}
			}
		})
	}
}

func TestStoresStopEarly(t *testing.T) {
	at := time.Date(2026, 3, 1, 14, 5, 9, 0, time.Local)
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				if err := s.Append(context.Background(), result("P"+string(rune('a'+i)), i, at.Add(time.Duration(i)*time.Second))); err != nil {
					t.Fatalf("append: %v", err)
				}
			}
			n := 0
			for range s.All(context.Background()) {
				n++
				break
			}
			if n != 1 {
				t.Fatalf("expected to stop after one line, got %d", n)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	at := time.Date(2026, 10, 17, 8, 0, 1, 0, time.Local)
	orig := result("小明 the Great", 4, at)
	s := NewFileStore(filepath.Join(t.TempDir(), "r.txt"))
	if err := s.Append(context.Background(), orig); err != nil {
		t.Fatalf("append: %v", err)
	}
	lines := collect(t, s)
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %v", lines)
	}
	e, err := ParseLine(lines[0])
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if e.Player != orig.Player || e.Correct != 4 || e.Total != 6 || e.Percent != orig.Percent() {
		t.Fatalf("unexpected entry %+v", e)
	}
	if !e.PlayedAt.Equal(at) {
		t.Fatalf("expected %v, got %v", at, e.PlayedAt)
	}
	if !strings.Contains(lines[0], "(66%)") {
		t.Fatalf("expected percentage text in %q", lines[0])
	}
}

func TestParseLine(t *testing.T) {
	e, err := ParseLine("Player: A | B | Score: 6/6 (100%) | Date: 2025-12-31 23:59:59")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if e.Player != "A | B" || !e.Perfect() {
		t.Fatalf("unexpected entry %+v", e)
	}
	for _, bad := range []string{"", "hello", "Player: x | Score: 6/6 | Date: 2025-12-31 23:59:59", "Player: x | Score: 1/6 (16%) | Date: 2025-13-40 00:00:00"} {
		if _, err := ParseLine(bad); !errors.Is(err, ErrMalformedLine) {
			t.Fatalf("ParseLine(%q): expected ErrMalformedLine, got %v", bad, err)
		}
	}
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "missing.txt"))
	if got := collect(t, s); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestFileStoreSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.txt")
	if err := os.WriteFile(path, []byte("first\n\nsecond\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := collect(t, NewFileStore(path))
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("expected verbatim non-blank lines, got %v", got)
	}
}

func TestFileStoreWriteError(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes the open fail.
	path := filepath.Join(dir, "taken")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	err := NewFileStore(path).Append(context.Background(), result("A", 1, time.Now()))
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
}

func TestFileStoreReadError(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir) // reading a directory fails
	var errs int
	for _, err := range s.All(context.Background()) {
		if !errors.Is(err, ErrRead) {
			t.Fatalf("expected ErrRead, got %v", err)
		}
		errs++
	}
	if errs != 1 {
		t.Fatalf("expected exactly one error, got %d", errs)
	}
}

func TestSQLiteMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Append(context.Background(), result("A", 3, time.Now())); err != nil {
		t.Fatalf("append: %v", err)
	}
	_ = first.Close()

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if got := collect(t, second); len(got) != 1 {
		t.Fatalf("expected data to survive reopen, got %v", got)
	}
}

func TestSQLiteRecordsEachMigrationOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	want, err := assets.Migrations()
	if err != nil {
		t.Fatalf("migrations: %v", err)
	}
	for i := 0; i < 2; i++ {
		s, err := OpenSQLite(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		var n int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n); err != nil {
			t.Fatalf("count: %v", err)
		}
		_ = s.Close()
		if n != len(want) {
			t.Fatalf("open %d: expected %d recorded migrations, got %d", i, len(want), n)
		}
	}
}

func TestSQLiteDuplicateIDIsWriteError(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	r := result("A", 3, time.Now())
	if err := s.Append(context.Background(), r); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append(context.Background(), r); !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite for duplicate id, got %v", err)
	}
}

func TestCancelledContextIsWriteError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, s := range backends(t) {
		if err := s.Append(ctx, result("A", 1, time.Now())); !errors.Is(err, ErrWrite) {
			t.Fatalf("%s: expected ErrWrite, got %v", name, err)
		}
	}
}
