// internal/terminal/terminal.go
//
// Terminal is the real display.Display, backed by a tcell screen.
//
// Input: a single goroutine polls screen events into a buffered channel.
// Typed runes are split back into their UTF-8 bytes (multi-byte characters
// arrive as several units); Enter and Backspace become out-of-band keys and
// every other special key (arrows, Esc, function keys) is KeyUnknown.
// Ctrl-C surfaces as display.ErrInterrupted.
//
// Failures are sticky: once input has failed, every later read returns the
// same display.ErrUnavailable.

package terminal

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"

	"github.com/robalobadob/dogmatch/internal/display"
)

var styles = map[display.Style]tcell.Style{
	display.StyleDefault: tcell.StyleDefault,
	display.StyleSuccess: tcell.StyleDefault.Foreground(tcell.ColorGreen),
	display.StyleFailure: tcell.StyleDefault.Foreground(tcell.ColorRed),
	display.StyleHeading: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	display.StyleHint:    tcell.StyleDefault.Foreground(tcell.ColorTeal),
}

type readResult struct {
	key display.Key
	err error
}

// Terminal implements display.Display on a tcell screen.
type Terminal struct {
	in     *os.File
	screen tcell.Screen

	keys chan readResult
	done chan struct{}
	err  error // sticky read failure; reads happen on one goroutine

	started   bool
	closed    bool
	startOnce sync.Once
	closeOnce sync.Once
}

// New returns a terminal for the controlling TTY behind in. Nothing touches
// the terminal until Init.
func New(in *os.File) *Terminal {
	return &Terminal{in: in}
}

// NewWithScreen returns a terminal on an existing screen, such as a
// tcell simulation screen.
func NewWithScreen(s tcell.Screen) *Terminal {
	return &Terminal{screen: s}
}

// Init takes over the screen and starts reading input.
func (t *Terminal) Init() error {
	if t.screen == nil {
		fd := t.in.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return fmt.Errorf("%w: stdin is not a terminal", display.ErrUnavailable)
		}
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("%w: %w", display.ErrUnavailable, err)
		}
		t.screen = s
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("%w: init screen: %w", display.ErrUnavailable, err)
	}
	t.started = true
	t.screen.SetStyle(tcell.StyleDefault)
	t.screen.Clear()
	t.screen.Show()
	t.startOnce.Do(t.startReader)
	return nil
}

// Close restores the terminal. Safe to call more than once.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() {
		if !t.started {
			return
		}
		t.closed = true
		if t.done != nil {
			close(t.done)
		}
		t.screen.Fini()
	})
	return nil
}

func (t *Terminal) startReader() {
	t.keys = make(chan readResult, 64)
	t.done = make(chan struct{})
	go func() {
		for {
			ev := t.screen.PollEvent()
			var out []readResult
			switch ev := ev.(type) {
			case nil:
				out = []readResult{{err: fmt.Errorf("%w: screen closed", display.ErrUnavailable)}}
			case *tcell.EventError:
				out = []readResult{{err: fmt.Errorf("%w: read: %s", display.ErrUnavailable, ev.Error())}}
			case *tcell.EventResize:
				t.screen.Sync()
			case *tcell.EventKey:
				out = translate(ev)
			}
			for _, r := range out {
				select {
				case t.keys <- r:
				case <-t.done:
					return
				}
				if r.err != nil && !errors.Is(r.err, display.ErrInterrupted) {
					return
				}
			}
		}
	}()
}

// translate maps one key event onto display keys. A rune becomes one unit
// per UTF-8 byte.
func translate(ev *tcell.EventKey) []readResult {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return []readResult{{err: display.ErrInterrupted}}
	case tcell.KeyEnter, tcell.KeyLF:
		return []readResult{{key: display.KeyEnter}}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []readResult{{key: display.KeyBackspace}}
	case tcell.KeyRune:
		var b [utf8.UTFMax]byte
		n := utf8.EncodeRune(b[:], ev.Rune())
		out := make([]readResult, n)
		for i := 0; i < n; i++ {
			out[i] = readResult{key: display.Key(b[i])}
		}
		return out
	}
	return []readResult{{key: display.KeyUnknown}}
}

func (t *Terminal) Clear() error {
	if err := t.ready(); err != nil {
		return err
	}
	t.screen.Clear()
	t.screen.Show()
	return nil
}

// DrawText writes text at (row, col), zero-based. Rows below the screen are
// dropped; text is cut at the right edge. The cursor is left after the text.
func (t *Terminal) DrawText(row, col int, text string, style display.Style) error {
	if err := t.ready(); err != nil {
		return err
	}
	rows, cols := t.Size()
	if row < 0 || col < 0 || row >= rows {
		return nil
	}
	text = display.Truncate(text, cols-col)
	st, ok := styles[style]
	if !ok {
		st = tcell.StyleDefault
	}

	x := col
	for _, c := range cells(text) {
		t.screen.SetContent(x, row, c.main, c.comb, st)
		x += c.width
	}
	if x < cols {
		t.screen.ShowCursor(x, row)
	}
	t.screen.Show()
	return nil
}

type cell struct {
	main  rune
	comb  []rune
	width int
}

// cells groups text into screen cells; zero-width runes combine with the
// preceding cell.
func cells(text string) []cell {
	var out []cell
	for _, r := range text {
		w := display.RuneWidth(r)
		if w == 0 {
			if len(out) > 0 {
				out[len(out)-1].comb = append(out[len(out)-1].comb, r)
			}
			continue
		}
		out = append(out, cell{main: r, width: w})
	}
	return out
}

func (t *Terminal) ClearLine(row int) error {
	if err := t.ready(); err != nil {
		return err
	}
	_, cols := t.Size()
	for x := 0; x < cols; x++ {
		t.screen.SetContent(x, row, ' ', nil, tcell.StyleDefault)
	}
	t.screen.Show()
	return nil
}

// ReadKey blocks until a key arrives.
func (t *Terminal) ReadKey() (display.Key, error) {
	if err := t.ready(); err != nil {
		return 0, err
	}
	return t.receive(<-t.keys)
}

// ReadKeyTimeout waits at most d for a key.
func (t *Terminal) ReadKeyTimeout(d time.Duration) (display.Key, bool, error) {
	if err := t.ready(); err != nil {
		return 0, false, err
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case r := <-t.keys:
		k, err := t.receive(r)
		return k, err == nil, err
	case <-timer.C:
		return 0, false, nil
	}
}

func (t *Terminal) receive(r readResult) (display.Key, error) {
	if r.err != nil {
		if !errors.Is(r.err, display.ErrInterrupted) {
			t.err = r.err
		}
		return 0, r.err
	}
	return r.key, nil
}

// ready reports the sticky failure, or ErrUnavailable outside Init..Close.
func (t *Terminal) ready() error {
	switch {
	case t.err != nil:
		return t.err
	case !t.started:
		return fmt.Errorf("%w: not initialized", display.ErrUnavailable)
	case t.closed:
		return fmt.Errorf("%w: closed", display.ErrUnavailable)
	}
	return nil
}

// ReadLine echoes typed text after prompt until Enter. Backspace removes
// whole characters; partially typed characters are not drawn.
func (t *Terminal) ReadLine(row, col int, prompt string) (string, error) {
	if err := t.DrawText(row, col, prompt, display.StyleDefault); err != nil {
		return "", err
	}
	var line []byte
	for {
		k, err := t.ReadKey()
		if err != nil {
			return "", err
		}
		switch {
		case k == display.KeyEnter:
			return toValid(line), nil
		case k == display.KeyBackspace:
			line = []byte(display.TrimLastChar(string(line)))
		case k.Printable():
			line = append(line, byte(k))
		default:
			continue
		}
		if err := t.ClearLine(row); err != nil {
			return "", err
		}
		if err := t.DrawText(row, col, prompt+toValid(line), display.StyleDefault); err != nil {
			return "", err
		}
	}
}

func toValid(b []byte) string { return strings.ToValidUTF8(string(b), "") }

// Size reports the screen dimensions, or 24x80 before Init.
func (t *Terminal) Size() (int, int) {
	if t.screen == nil || !t.started {
		return 24, 80
	}
	cols, rows := t.screen.Size()
	if rows <= 0 || cols <= 0 {
		return 24, 80
	}
	return rows, cols
}
