// internal/display/display.go
//
// The Display/Input collaborator consumed by the game engine and the menu.
// The engine only ever draws text at a position and reads keys; everything
// terminal specific lives behind this interface (see internal/terminal).

package display

import (
	"errors"
	"time"
)

var (
	// ErrUnavailable reports a display that cannot start or has failed.
	ErrUnavailable = errors.New("display unavailable")
	// ErrInterrupted reports that the player pressed Ctrl-C.
	ErrInterrupted = errors.New("display interrupted")
)

// Key is one input event. Values 0..255 are raw input units (bytes of the
// player's UTF-8 text); larger values are out-of-band keys.
type Key int

const (
	KeyEnter Key = 0x100 + iota
	KeyBackspace
	KeyUnknown // escape sequences and other keys the game ignores
)

// Unit reports whether k carries a raw input byte.
func (k Key) Unit() bool { return k >= 0 && k <= 0xFF }

// Printable reports whether k is a printable unit: ASCII graphic/space or any
// byte of a multi-byte sequence.
func (k Key) Printable() bool { return k.Unit() && k >= 0x20 && k != 0x7F }

// Style selects a text color.
type Style int

const (
	StyleDefault Style = iota
	StyleSuccess       // green
	StyleFailure       // red
	StyleHeading       // yellow
	StyleHint          // cyan
)

// Display draws text and reads keys.
type Display interface {
	Init() error
	Close() error
	Clear() error
	DrawText(row, col int, text string, style Style) error
	ClearLine(row int) error
	ReadKey() (Key, error)
	// ReadKeyTimeout waits at most d; ok is false when nothing arrived.
	ReadKeyTimeout(d time.Duration) (k Key, ok bool, err error)
	// ReadLine shows prompt at (row, col) and returns the echoed line.
	ReadLine(row, col int, prompt string) (string, error)
	Size() (rows, cols int)
}

// WaitForEnter blocks until the player presses Enter.
func WaitForEnter(d Display) error {
	for {
		k, err := d.ReadKey()
		if err != nil {
			return err
		}
		if k == KeyEnter {
			return nil
		}
	}
}
