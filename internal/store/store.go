// internal/store/store.go
//
// Persistence for completed rounds.
//
// Every backend stores one result per round and lists them back as
// human-readable lines, oldest first:
//
//   Player: <name> | Score: <n>/<total> (<pct>%) | Date: <YYYY-MM-DD HH:MM:SS>
//
// Listing is lazy and restartable: each call to All re-reads the backend from
// the start. A store that has never been written lists nothing.

package store

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"time"

	"github.com/robalobadob/dogmatch/internal/game"
)

// DateLayout is the timestamp format of a result line.
const DateLayout = "2006-01-02 15:04:05"

var (
	// ErrWrite wraps any failure to persist a result.
	ErrWrite = errors.New("result store: write failed")
	// ErrRead wraps any failure to list results, other than a missing store.
	ErrRead = errors.New("result store: read failed")
	// ErrMalformedLine is returned by ParseLine.
	ErrMalformedLine = errors.New("result store: malformed line")
)

// Store defines the persistence interface for finished rounds.
type Store interface {
	// Append persists r.
	Append(ctx context.Context, r game.Result) error

	// All yields stored lines in insertion order. A read failure is yielded
	// once as ("", err) and ends the sequence.
	All(ctx context.Context) iter.Seq2[string, error]
}

// FormatLine renders r as a result line, in local time.
func FormatLine(r game.Result) string {
	return fmt.Sprintf("Player: %s | Score: %d/%d (%d%%) | Date: %s",
		r.Player, r.Correct, r.Total, r.Percent(), r.PlayedAt.Local().Format(DateLayout))
}

var linePattern = regexp.MustCompile(`^Player: (.*) \| Score: (\d+)/(\d+) \((\d+)%\) \| Date: (\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})$`)

// Entry is a parsed result line.
type Entry struct {
	Player   string
	Correct  int
	Total    int
	Percent  int
	PlayedAt time.Time
}

// Perfect reports whether every question was answered correctly.
func (e Entry) Perfect() bool { return e.Total > 0 && e.Correct == e.Total }

// ParseLine reverses FormatLine. Dates are read in local time.
func ParseLine(line string) (Entry, error) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
	correct, _ := strconv.Atoi(m[2])
	total, _ := strconv.Atoi(m[3])
	pct, _ := strconv.Atoi(m[4])
	at, err := time.ParseInLocation(DateLayout, m[5], time.Local)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrMalformedLine, err)
	}
	return Entry{Player: m[1], Correct: correct, Total: total, Percent: pct, PlayedAt: at}, nil
}

// readErr yields a single wrapped read error.
func readErr(err error) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield("", fmt.Errorf("%w: %w", ErrRead, err))
	}
}
