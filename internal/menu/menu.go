// internal/menu/menu.go
//
// The main menu around the game engine.
// Choices:
//   1. Start New Game → game.Runner.Play
//   2. View History   → stored result lines, oldest first, one screen
//   3. Exit Game      → goodbye screen, return nil
//
// Display errors end the loop and are returned to the caller.

package menu

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dogmatch/internal/display"
	"github.com/robalobadob/dogmatch/internal/store"
)

// Player runs one round.
type Player interface {
	Play(ctx context.Context) error
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(ctx context.Context) error

func (f PlayerFunc) Play(ctx context.Context) error { return f(ctx) }

// Menu is the top-level interactive loop.
type Menu struct {
	Display display.Display
	Game    Player
	History store.Store

	InvalidPause time.Duration // how long "Invalid choice" stays up
	GoodbyePause time.Duration // how long the goodbye screen stays up
}

// Run shows the menu until the player chooses to exit.
func (m *Menu) Run(ctx context.Context) error {
	d := m.Display
	for {
		if err := m.drawMain(); err != nil {
			return err
		}
		k, err := d.ReadKey()
		if err != nil {
			return err
		}

		switch k {
		case '1':
			if err := m.Game.Play(ctx); err != nil {
				return err
			}
		case '2':
			if err := m.showHistory(ctx); err != nil {
				return err
			}
		case '3':
			return m.goodbye()
		default:
			if err := d.DrawText(8, 0, "Invalid choice, please try again.", display.StyleFailure); err != nil {
				return err
			}
			sleep(m.InvalidPause)
		}
	}
}

func (m *Menu) drawMain() error {
	d := m.Display
	if err := d.Clear(); err != nil {
		return err
	}
	lines := []struct {
		row   int
		text  string
		style display.Style
	}{
		{0, "==== Dog Matching Game - Main Menu ====", display.StyleHeading},
		{2, "1. Start New Game", display.StyleDefault},
		{3, "2. View History", display.StyleDefault},
		{4, "3. Exit Game", display.StyleDefault},
		{6, "Please choose (1-3): ", display.StyleDefault},
	}
	for _, l := range lines {
		if err := d.DrawText(l.row, 0, l.text, l.style); err != nil {
			return err
		}
	}
	return nil
}

// showHistory lists stored results that fit above the footer. Perfect
// rounds are highlighted. Read failures are logged and shown as no history.
func (m *Menu) showHistory(ctx context.Context) error {
	d := m.Display
	if err := d.Clear(); err != nil {
		return err
	}
	if err := d.DrawText(0, 0, "==== Game History ====", display.StyleHeading); err != nil {
		return err
	}

	rows, cols := d.Size()
	footer := max(rows-2, 1)
	row, found := 2, false
	if m.History != nil {
		for line, err := range m.History.All(ctx) {
			if err != nil {
				log.Warn().Err(err).Msg("read history")
				break
			}
			found = true
			if row >= footer {
				break
			}
			style := display.StyleDefault
			if e, perr := store.ParseLine(line); perr == nil && e.Perfect() {
				style = display.StyleSuccess
			}
			if err := d.DrawText(row, 0, display.Truncate(line, cols), style); err != nil {
				return err
			}
			row++
		}
	}
	if !found {
		if err := d.DrawText(min(2, footer-1), 0, "No history records.", display.StyleDefault); err != nil {
			return err
		}
	}

	if err := d.DrawText(footer, 0, "Press any key to return...", display.StyleDefault); err != nil {
		return err
	}
	_, err := d.ReadKey()
	return err
}

func (m *Menu) goodbye() error {
	d := m.Display
	if err := d.Clear(); err != nil {
		return err
	}
	if err := d.DrawText(0, 0, "Thanks for playing! Goodbye!", display.StyleSuccess); err != nil {
		return err
	}
	sleep(m.GoodbyePause)
	return nil
}

func sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
