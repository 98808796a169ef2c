// internal/game/input.go
//
// Timed, character-by-character answer entry.
//
// The loop polls the display for at most one second at a time. A poll with no
// event costs one second of the countdown; keys do not. Multi-byte characters
// arrive as separate units and are only appended once complete, so the buffer
// always holds valid UTF-8 and backspace removes whole characters.

package game

import (
	"time"
	"unicode/utf8"

	"github.com/robalobadob/dogmatch/internal/display"
)

// pollInterval is the length of one countdown tick.
const pollInterval = time.Second

// Answer is what a TimedInput collected.
type Answer struct {
	Text        string
	TimedOut    bool
	SecondsLeft int
}

// TimedInput reads one answer line against a countdown.
type TimedInput struct {
	Display display.Display
	Row     int
	Col     int
	Prompt  string
	Limit   time.Duration

	buf     string
	pending *display.Key // key read while completing a multi-byte character
}

// Run collects the answer. onTick, if set, receives the seconds left once
// before the first poll and after every poll that timed out.
func (in *TimedInput) Run(onTick func(secondsLeft int)) (Answer, error) {
	in.buf = ""
	in.pending = nil
	left := int(in.Limit / pollInterval)
	if onTick != nil {
		onTick(left)
	}
	if err := in.echo(); err != nil {
		return Answer{}, err
	}

	for left > 0 {
		k, ok, err := in.next()
		if err != nil {
			return Answer{}, err
		}
		if !ok {
			left--
			if onTick != nil {
				onTick(left)
			}
			continue
		}

		switch {
		case k == display.KeyEnter:
			return Answer{Text: in.buf, SecondsLeft: left}, nil
		case k == display.KeyBackspace || k == 0x7F || k == 0x08:
			if in.buf == "" {
				continue
			}
			in.buf = display.TrimLastChar(in.buf)
		case k.Printable():
			changed, err := in.appendUnit(byte(k))
			if err != nil {
				return Answer{}, err
			}
			if !changed {
				continue
			}
		default:
			continue
		}
		if err := in.echo(); err != nil {
			return Answer{}, err
		}
	}
	return Answer{TimedOut: true}, nil
}

// next returns a key left over from a multi-byte read, or polls the display.
func (in *TimedInput) next() (display.Key, bool, error) {
	if in.pending != nil {
		k := *in.pending
		in.pending = nil
		return k, true, nil
	}
	return in.Display.ReadKeyTimeout(pollInterval)
}

// appendUnit appends an ASCII unit, or reads the continuation units of a
// multi-byte character and appends it once complete.
func (in *TimedInput) appendUnit(lead byte) (bool, error) {
	if lead < utf8.RuneSelf {
		in.buf += string(lead)
		return true, nil
	}
	if !utf8.RuneStart(lead) {
		return false, nil // stray continuation byte
	}

	seq := []byte{lead}
	for !utf8.FullRune(seq) {
		k, ok, err := in.Display.ReadKeyTimeout(pollInterval)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil // truncated sequence
		}
		if !k.Unit() || utf8.RuneStart(byte(k)) {
			in.pending = &k
			return false, nil
		}
		seq = append(seq, byte(k))
	}
	if !utf8.Valid(seq) {
		return false, nil
	}
	in.buf += string(seq)
	return true, nil
}

// echo redraws the prompt and the current buffer.
func (in *TimedInput) echo() error {
	if err := in.Display.ClearLine(in.Row); err != nil {
		return err
	}
	return in.Display.DrawText(in.Row, in.Col, in.Prompt+in.buf, display.StyleDefault)
}
