// Package displaytest provides a scripted display.Display for tests.
package displaytest

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/robalobadob/dogmatch/internal/display"
)

// Timeout is a scripted "no event" for ReadKeyTimeout.
const Timeout display.Key = -1

// Draw is one recorded DrawText call.
type Draw struct {
	Row, Col int
	Text     string
	Style    display.Style
}

// Fake replays scripted keys and lines and records what was drawn.
//
// ReadKey and ReadKeyTimeout share the key queue. When the queue is empty,
// ReadKeyTimeout reports no event and ReadKey returns display.KeyEnter.
type Fake struct {
	mu     sync.Mutex
	keys   []display.Key
	lines  []string
	draws  []Draw
	clears int
	waited time.Duration
	closed bool

	Rows, Cols int
	// FailAfter makes every call fail with display.ErrUnavailable once this
	// many reads have happened. Zero disables it.
	FailAfter int
	reads     int
}

// New returns a fake with an 80x24 screen.
func New() *Fake { return &Fake{Rows: 24, Cols: 80} }

// Keys queues raw keys.
func (f *Fake) Keys(ks ...display.Key) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, ks...)
	return f
}

// Type queues the UTF-8 bytes of s as individual units.
func (f *Fake) Type(s string) *Fake {
	ks := make([]display.Key, 0, len(s))
	for i := 0; i < len(s); i++ {
		ks = append(ks, display.Key(s[i]))
	}
	return f.Keys(ks...)
}

// Submit queues s followed by Enter.
func (f *Fake) Submit(s string) *Fake {
	return f.Type(s).Keys(display.KeyEnter)
}

// Lines queues answers for ReadLine.
func (f *Fake) Lines(ls ...string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, ls...)
	return f
}

func (f *Fake) Init() error { return nil }

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *Fake) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	return nil
}

func (f *Fake) DrawText(row, col int, text string, style display.Style) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draws = append(f.draws, Draw{Row: row, Col: col, Text: text, Style: style})
	return nil
}

func (f *Fake) ClearLine(int) error { return nil }

func (f *Fake) ReadKey() (display.Key, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.countRead(); err != nil {
		return 0, err
	}
	for len(f.keys) > 0 {
		k := f.keys[0]
		f.keys = f.keys[1:]
		if k != Timeout {
			return k, nil
		}
	}
	return display.KeyEnter, nil
}

func (f *Fake) ReadKeyTimeout(d time.Duration) (display.Key, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.countRead(); err != nil {
		return 0, false, err
	}
	if len(f.keys) == 0 {
		f.waited += d
		return 0, false, nil
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	if k == Timeout {
		f.waited += d
		return 0, false, nil
	}
	return k, true, nil
}

func (f *Fake) ReadLine(row, col int, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.countRead(); err != nil {
		return "", err
	}
	f.draws = append(f.draws, Draw{Row: row, Col: col, Text: prompt})
	if len(f.lines) == 0 {
		return "", nil
	}
	l := f.lines[0]
	f.lines = f.lines[1:]
	return l, nil
}

func (f *Fake) Size() (int, int) { return f.Rows, f.Cols }

func (f *Fake) countRead() error {
	f.reads++
	if f.FailAfter > 0 && f.reads > f.FailAfter {
		return errors.Join(display.ErrUnavailable, errors.New("scripted failure"))
	}
	return nil
}

// Draws returns every recorded draw.
func (f *Fake) Draws() []Draw {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Draw(nil), f.draws...)
}

// Drew reports whether any drawn text contains substr.
func (f *Fake) Drew(substr string) bool {
	for _, d := range f.Draws() {
		if strings.Contains(d.Text, substr) {
			return true
		}
	}
	return false
}

// Count returns how many drawn texts contain substr.
func (f *Fake) Count(substr string) int {
	n := 0
	for _, d := range f.Draws() {
		if strings.Contains(d.Text, substr) {
			n++
		}
	}
	return n
}

// Clears is the number of Clear calls.
func (f *Fake) Clears() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clears
}

// Waited is the total simulated time spent in timed-out reads.
func (f *Fake) Waited() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.waited
}

// Pending is the number of unread scripted keys.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.keys)
}

// Closed reports whether Close was called.
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
