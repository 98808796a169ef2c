// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Status:   lifecycle of a round (created → in progress → completed).
//   - Question: the state of one timed question.
//   - Result:   the outcome of a completed round, handed to the result store.

package game

import (
	"time"

	"github.com/robalobadob/dogmatch/internal/breeds"
)

const (
	// QuestionTime is the answer window for every question.
	QuestionTime = 30 * time.Second
	// DefaultPlayer replaces a blank player name.
	DefaultPlayer = "Player"
)

// Status is the lifecycle state of a Session.
type Status string

const (
	StatusCreated    Status = "created"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Question holds the state of the question currently being asked.
type Question struct {
	Index     int          // 1-based position in the round.
	Target    breeds.Breed // Breed the player must name.
	Trait     string       // The revealed clue.
	TimeLimit time.Duration
}

// Result is the outcome of a completed round. Never mutated after creation.
type Result struct {
	ID       string    // Round identifier (uuid).
	Player   string    // Player name, "Player" when left blank.
	Correct  int       // Questions answered correctly.
	Total    int       // Questions in the round.
	PlayedAt time.Time // Completion time.
}

// Percent is Correct*100/Total, rounded down.
func (r Result) Percent() int {
	if r.Total <= 0 {
		return 0
	}
	return r.Correct * 100 / r.Total
}

// Outcome classifies a finished round.
type Outcome int

const (
	OutcomePartial Outcome = iota
	OutcomePerfect
)

// Outcome reports whether every question was answered correctly.
func (r Result) Outcome() Outcome {
	if r.Total > 0 && r.Correct == r.Total {
		return OutcomePerfect
	}
	return OutcomePartial
}
