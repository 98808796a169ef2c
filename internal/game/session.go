// internal/game/session.go
//
// Session is the explicit state of one round.
// Responsibilities:
//   - Hold the round's breeds, the current question and the running tally.
//   - Enforce the lifecycle: created → in progress → completed, exactly once each.
//   - Produce the immutable Result when the last question is resolved.
//
// A fresh Session is built for every round; nothing here touches the display.

package game

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/dogmatch/internal/breeds"
)

var (
	ErrSessionStarted       = errors.New("session already started")
	ErrSessionNotInProgress = errors.New("session not in progress")
	ErrRoundIncomplete      = errors.New("round has unanswered questions")
	ErrRoundSize            = errors.New("round must hold distinct breeds")
)

// Session tracks one round.
type Session struct {
	ID       string
	Player   string
	Round    []breeds.Breed
	Status   Status
	Answered int // questions resolved so far
	Correct  int
}

// NewSession builds a session for player over round. A blank player name
// becomes DefaultPlayer.
func NewSession(player string, round []breeds.Breed) (*Session, error) {
	if len(round) != breeds.RoundSize {
		return nil, ErrRoundSize
	}
	seen := make(map[string]struct{}, len(round))
	for _, b := range round {
		if _, dup := seen[b.Canonical]; dup {
			return nil, ErrRoundSize
		}
		seen[b.Canonical] = struct{}{}
	}
	return &Session{
		ID:     uuid.NewString(),
		Player: NormalizePlayer(player),
		Round:  round,
		Status: StatusCreated,
	}, nil
}

// NormalizePlayer trims name and falls back to DefaultPlayer.
func NormalizePlayer(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return DefaultPlayer
	}
	return name
}

// Start moves the session into progress.
func (s *Session) Start() error {
	if s.Status != StatusCreated {
		return ErrSessionStarted
	}
	s.Status = StatusInProgress
	return nil
}

// Remaining reports whether questions are left to ask.
func (s *Session) Remaining() bool {
	return s.Status == StatusInProgress && s.Answered < len(s.Round)
}

// Current returns the breed of the next unanswered question and its 1-based index.
func (s *Session) Current() (breeds.Breed, int, error) {
	if !s.Remaining() {
		return breeds.Breed{}, 0, ErrSessionNotInProgress
	}
	return s.Round[s.Answered], s.Answered + 1, nil
}

// Answer resolves the current question.
func (s *Session) Answer(correct bool) error {
	if !s.Remaining() {
		return ErrSessionNotInProgress
	}
	s.Answered++
	if correct {
		s.Correct++
	}
	return nil
}

// Finish completes the session and returns its Result.
func (s *Session) Finish(now time.Time) (Result, error) {
	if s.Status != StatusInProgress {
		return Result{}, ErrSessionNotInProgress
	}
	if s.Answered < len(s.Round) {
		return Result{}, ErrRoundIncomplete
	}
	s.Status = StatusCompleted
	return Result{
		ID:       s.ID,
		Player:   s.Player,
		Correct:  s.Correct,
		Total:    len(s.Round),
		PlayedAt: now,
	}, nil
}

// Completion is the running percentage shown in the status line:
// correct answers over answered questions, 0 before the first answer.
func (s *Session) Completion() int {
	if s.Answered == 0 {
		return 0
	}
	return s.Correct * 100 / s.Answered
}
