package menu

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/dogmatch/internal/display"
	"github.com/robalobadob/dogmatch/internal/display/displaytest"
	"github.com/robalobadob/dogmatch/internal/game"
	"github.com/robalobadob/dogmatch/internal/store"
)

type countingGame struct {
	plays int
	err   error
}

func (g *countingGame) Play(context.Context) error {
	g.plays++
	return g.err
}

func TestRunDispatch(t *testing.T) {
	f := displaytest.New().Keys('1', 'x', '1', '3')
	g := &countingGame{}
	m := &Menu{Display: f, Game: g, History: store.NewMemoryStore()}

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if g.plays != 2 {
		t.Fatalf("expected 2 games, got %d", g.plays)
	}
	if f.Count("Invalid choice, please try again.") != 1 {
		t.Fatal("expected one invalid choice message")
	}
	if !f.Drew("Thanks for playing! Goodbye!") {
		t.Fatal("expected goodbye screen")
	}
	if f.Clears() < 4 || f.Count("1. Start New Game") != 4 {
		t.Fatalf("expected the menu redrawn before every choice, got %d", f.Count("1. Start New Game"))
	}
}

func TestRunPropagatesGameError(t *testing.T) {
	f := displaytest.New().Keys('1')
	g := &countingGame{err: display.ErrUnavailable}
	m := &Menu{Display: f, Game: g}

	if err := m.Run(context.Background()); !errors.Is(err, display.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestRunPropagatesReadError(t *testing.T) {
	// The menu choice is read; the history footer read fails.
	f := displaytest.New().Keys('2')
	f.FailAfter = 1
	m := &Menu{Display: f, Game: &countingGame{}, History: store.NewMemoryStore()}

	if err := m.Run(context.Background()); !errors.Is(err, display.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestHistoryEmpty(t *testing.T) {
	f := displaytest.New().Keys('2', 'q', '3')
	m := &Menu{Display: f, Game: &countingGame{}, History: store.NewFileStore(filepath.Join(t.TempDir(), "none.txt"))}

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !f.Drew("No history records.") || !f.Drew("Press any key to return...") {
		t.Fatal("expected empty history screen")
	}
}

func TestHistoryListsAndHighlights(t *testing.T) {
	mem := store.NewMemoryStore()
	at := time.Date(2026, 5, 4, 3, 2, 1, 0, time.Local)
	_ = mem.Append(context.Background(), game.Result{ID: "1", Player: "Ann", Correct: 6, Total: 6, PlayedAt: at})
	_ = mem.Append(context.Background(), game.Result{ID: "2", Player: "Ben", Correct: 1, Total: 6, PlayedAt: at})

	f := displaytest.New().Keys('2', 'q', '3')
	m := &Menu{Display: f, Game: &countingGame{}, History: mem}
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	var ann, ben *displaytest.Draw
	for _, d := range f.Draws() {
		d := d
		switch d.Text {
		case "Player: Ann | Score: 6/6 (100%) | Date: 2026-05-04 03:02:01":
			ann = &d
		case "Player: Ben | Score: 1/6 (16%) | Date: 2026-05-04 03:02:01":
			ben = &d
		}
	}
	if ann == nil || ben == nil {
		t.Fatal("expected both history lines drawn")
	}
	if ann.Row != 2 || ben.Row != 3 {
		t.Fatalf("expected insertion order on rows 2 and 3, got %d and %d", ann.Row, ben.Row)
	}
	if ann.Style != display.StyleSuccess || ben.Style != display.StyleDefault {
		t.Fatal("expected only the perfect round highlighted")
	}
	if f.Drew("No history records.") {
		t.Fatal("expected no empty-history message")
	}
}

func TestHistoryTruncatedToScreen(t *testing.T) {
	mem := store.NewMemoryStore()
	for i := 0; i < 30; i++ {
		_ = mem.Append(context.Background(), game.Result{ID: fmt.Sprint(i), Player: fmt.Sprintf("P%02d", i), Correct: 1, Total: 6, PlayedAt: time.Now()})
	}
	f := displaytest.New().Keys('2', 'q', '3')
	f.Rows = 10
	m := &Menu{Display: f, Game: &countingGame{}, History: mem}
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := f.Count("Player: P"); got != 6 {
		t.Fatalf("expected 6 lines between the heading and footer, got %d", got)
	}
	if !f.Drew("Player: P00") || f.Drew("Player: P06") {
		t.Fatal("expected the oldest lines shown first")
	}
}

func TestHistoryOnTinyScreen(t *testing.T) {
	mem := store.NewMemoryStore()
	_ = mem.Append(context.Background(), game.Result{ID: "1", Player: "Ann", Correct: 2, Total: 6, PlayedAt: time.Now()})

	f := displaytest.New().Keys('2', 'q', '3')
	f.Rows = 4
	m := &Menu{Display: f, Game: &countingGame{}, History: mem}
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if f.Drew("No history records.") {
		t.Fatal("expected no empty-history message while records exist")
	}
	for _, d := range f.Draws() {
		if d.Text == "Press any key to return..." && d.Row >= f.Rows {
			t.Fatalf("expected footer on screen, got row %d", d.Row)
		}
	}

	empty := displaytest.New().Keys('2', 'q', '3')
	empty.Rows = 4
	m = &Menu{Display: empty, Game: &countingGame{}, History: store.NewMemoryStore()}
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, d := range empty.Draws() {
		if d.Text == "No history records." && d.Row >= 2 {
			t.Fatalf("expected the empty message above the footer, got row %d", d.Row)
		}
	}
	if !empty.Drew("No history records.") {
		t.Fatal("expected empty-history message")
	}
}
