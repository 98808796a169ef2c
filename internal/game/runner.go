// internal/game/runner.go
//
// Runner plays one full round on a Display.
// Flow:
//   1. Welcome screen and player name.
//   2. Study screen listing every breed with its traits.
//   3. Six timed questions, each revealing one random trait.
//   4. Result screen (perfect round vs partial score), then persistence.
//
// Display failures abort the round and are returned as-is; they are fatal
// for the caller. Persistence failures are logged and swallowed.

package game

import (
	"context"
	"fmt"
	mrand "math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dogmatch/internal/breeds"
	"github.com/robalobadob/dogmatch/internal/display"
)

// Screen rows used by the question screen.
const (
	rowTitle    = 0
	rowStatus   = 2
	rowHint     = 4
	rowTrait    = 6
	rowPrompt   = 8
	rowFeedback = 10
)

const (
	answerPrompt    = "Enter the dog breed name: "
	perfectHeadline = "🎉 Congratulations! You got all 6 questions correct! 🎉"
	expertMessage   = "You are a dog breed expert!"
)

// Recorder persists finished rounds.
type Recorder interface {
	Append(ctx context.Context, r Result) error
}

// Runner orchestrates rounds. Zero-valued optional fields fall back to
// defaults: process-wide randomness, time.Now, no pause, no congratulations file.
type Runner struct {
	Display      display.Display
	Store        Recorder
	Catalog      []breeds.Breed
	Rand         *mrand.Rand
	CongratsPath string        // optional file shown on a perfect round
	Pause        time.Duration // how long answer feedback stays on screen
	Now          func() time.Time
}

// Play runs one round and returns its result.
func (r *Runner) Play(ctx context.Context) (Result, error) {
	if r.Rand == nil {
		r.Rand = breeds.NewRand()
	}
	if r.Now == nil {
		r.Now = time.Now
	}

	player, err := r.welcome()
	if err != nil {
		return Result{}, err
	}
	if err := r.study(); err != nil {
		return Result{}, err
	}

	round, err := breeds.SelectRound(r.Catalog, r.Rand)
	if err != nil {
		return Result{}, err
	}
	s, err := NewSession(player, round)
	if err != nil {
		return Result{}, err
	}
	if err := s.Start(); err != nil {
		return Result{}, err
	}
	log.Info().Str("session", s.ID).Str("player", s.Player).Msg("round started")

	for s.Remaining() {
		target, idx, err := s.Current()
		if err != nil {
			return Result{}, err
		}
		q := Question{
			Index:     idx,
			Target:    target,
			Trait:     breeds.RandomTrait(target, r.Rand),
			TimeLimit: QuestionTime,
		}
		ok, err := r.ask(s, q)
		if err != nil {
			return Result{}, err
		}
		if err := s.Answer(ok); err != nil {
			return Result{}, err
		}
	}

	res, err := s.Finish(r.Now())
	if err != nil {
		return Result{}, err
	}
	if err := r.showResult(res); err != nil {
		return res, err
	}
	if r.Store != nil {
		if err := r.Store.Append(ctx, res); err != nil {
			log.Warn().Err(err).Str("session", res.ID).Msg("store result")
		} else {
			log.Info().Str("session", res.ID).Int("correct", res.Correct).Msg("result stored")
		}
	}
	if err := r.Display.DrawText(r.resultFooterRow(res), 0, "Press any key to continue...", display.StyleDefault); err != nil {
		return res, err
	}
	_, err = r.Display.ReadKey()
	return res, err
}

// welcome shows the rules and asks for the player's name.
func (r *Runner) welcome() (string, error) {
	d := r.Display
	if err := d.Clear(); err != nil {
		return "", err
	}
	lines := []struct {
		row   int
		text  string
		style display.Style
	}{
		{0, "==== Welcome to the Dog Matching Game ====", display.StyleHeading},
		{2, "Game Rules:", display.StyleDefault},
		{3, "1. You will see traits describing a dog", display.StyleDefault},
		{4, "2. You need to guess the corresponding dog breed", display.StyleDefault},
		{5, fmt.Sprintf("3. There are %d questions, with %d seconds for each", breeds.RoundSize, int(QuestionTime/time.Second)), display.StyleDefault},
		{6, "4. Please enter the complete dog breed name", display.StyleDefault},
	}
	for _, l := range lines {
		if err := d.DrawText(l.row, 0, l.text, l.style); err != nil {
			return "", err
		}
	}
	name, err := d.ReadLine(8, 0, "Enter your name: ")
	if err != nil {
		return "", err
	}
	player := NormalizePlayer(name)
	ready := "Are you ready, " + player + "? Press Enter to see all dog breeds..."
	if err := d.DrawText(10, 0, ready, display.StyleDefault); err != nil {
		return "", err
	}
	if err := display.WaitForEnter(d); err != nil {
		return "", err
	}
	return player, nil
}

// study lists the whole catalog until the player presses Enter. Each breed
// takes three rows when the screen is tall enough, otherwise one. When even
// the one-row list does not fit, it is shown a page at a time.
func (r *Runner) study() error {
	const top, footer = 2, 2
	d := r.Display
	rows, cols := d.Size()

	perBreed := 3
	if rows > 0 && top+perBreed*len(r.Catalog)+footer > rows {
		perBreed = 1
	}
	perPage := len(r.Catalog)
	if rows > 0 {
		perPage = max(1, min(perPage, (rows-top-footer)/perBreed))
	}

	for start := 0; start < len(r.Catalog); start += perPage {
		end := min(start+perPage, len(r.Catalog))
		if err := d.Clear(); err != nil {
			return err
		}
		if err := d.DrawText(0, 0, "==== Dog Breeds and Traits List ====", display.StyleHeading); err != nil {
			return err
		}
		row := top
		for i := start; i < end; i++ {
			b := r.Catalog[i]
			name := strconv.Itoa(i+1) + ". " + b.DisplayName()
			traits := "Traits: - " + strings.Join(b.Traits, " - ")
			if perBreed == 1 {
				if err := d.DrawText(row, 0, display.Truncate(name+"  "+traits, cols), display.StyleDefault); err != nil {
					return err
				}
				row++
				continue
			}
			if err := d.DrawText(row, 0, name, display.StyleDefault); err != nil {
				return err
			}
			if err := d.DrawText(row+1, 0, "   "+traits, display.StyleDefault); err != nil {
				return err
			}
			row += 3
		}

		if rows > 0 {
			row = max(0, min(row, rows-footer))
		}
		prompt, next := "Remember these dog breeds and traits. Are you ready?", "Press Enter to start the game..."
		if end < len(r.Catalog) {
			prompt, next = "", "Press Enter to see more breeds..."
		}
		if prompt != "" {
			if err := d.DrawText(row, 0, prompt, display.StyleDefault); err != nil {
				return err
			}
		}
		if err := d.DrawText(row+1, 0, next, display.StyleDefault); err != nil {
			return err
		}
		if err := display.WaitForEnter(d); err != nil {
			return err
		}
	}
	return nil
}

// ask runs one question and reports whether it was answered correctly.
func (r *Runner) ask(s *Session, q Question) (bool, error) {
	d := r.Display
	if err := d.Clear(); err != nil {
		return false, err
	}
	if err := d.DrawText(rowTitle, 0, "==== Dog Matching Game - "+s.Player+" ====", display.StyleHeading); err != nil {
		return false, err
	}
	if err := d.DrawText(rowHint, 0, "Guess the dog breed based on the following trait:", display.StyleHint); err != nil {
		return false, err
	}
	if err := d.DrawText(rowTrait, 0, "Trait: "+q.Trait, display.StyleSuccess); err != nil {
		return false, err
	}

	var drawErr error
	in := &TimedInput{Display: d, Row: rowPrompt, Prompt: answerPrompt, Limit: q.TimeLimit}
	ans, err := in.Run(func(left int) {
		if drawErr != nil {
			return
		}
		if drawErr = d.ClearLine(rowStatus); drawErr == nil {
			drawErr = d.DrawText(rowStatus, 0, StatusLine(s, q.Index, left), display.StyleDefault)
		}
	})
	if err != nil {
		return false, err
	}
	if drawErr != nil {
		return false, drawErr
	}

	if ans.TimedOut {
		if err := d.DrawText(rowFeedback, 0, "Time's up! You didn't answer.", display.StyleFailure); err != nil {
			return false, err
		}
	}
	ok := IsMatch(ans.Text, q.Target)
	log.Debug().
		Str("session", s.ID).
		Int("question", q.Index).
		Str("breed", q.Target.Canonical).
		Bool("correct", ok).
		Bool("timed_out", ans.TimedOut).
		Msg("answer")

	feedbackRow := rowFeedback
	if ans.TimedOut {
		feedbackRow++
	}
	if ok {
		err = d.DrawText(feedbackRow, 0, "Correct! "+q.Target.DisplayName(), display.StyleSuccess)
	} else {
		err = d.DrawText(feedbackRow, 0, "Wrong! The correct answer is: "+q.Target.DisplayName(), display.StyleFailure)
	}
	if err != nil {
		return false, err
	}
	if r.Pause > 0 {
		time.Sleep(r.Pause)
	}
	return ok, nil
}

// StatusLine renders the per-question status bar.
func StatusLine(s *Session, index, secondsLeft int) string {
	return fmt.Sprintf("Question %d/%d    Correct: %d/%d    Completion: %d%%    Time left: %ds",
		index, len(s.Round), s.Correct, s.Answered, s.Completion(), secondsLeft)
}

// showResult draws the perfect-round or partial-score screen.
func (r *Runner) showResult(res Result) error {
	d := r.Display
	if err := d.Clear(); err != nil {
		return err
	}
	if err := d.DrawText(0, 0, "==== Game Over - "+res.Player+" ====", display.StyleHeading); err != nil {
		return err
	}

	if res.Outcome() == OutcomePerfect {
		if err := d.DrawText(2, 0, perfectHeadline, display.StyleSuccess); err != nil {
			return err
		}
		lines, ok := r.congratsLines()
		style := display.StyleDefault
		if !ok {
			lines, style = []string{expertMessage}, display.StyleSuccess
		}
		for i, l := range lines {
			if err := d.DrawText(4+i, 0, l, style); err != nil {
				return err
			}
		}
		return nil
	}

	lines := []struct {
		row   int
		text  string
		style display.Style
	}{
		{2, fmt.Sprintf("You got %d/%d questions correct.", res.Correct, res.Total), display.StyleDefault},
		{3, fmt.Sprintf("Final score: %d%%", res.Percent()), display.StyleDefault},
		{5, "Keep going, you'll do better next time!", display.StyleHeading},
	}
	for _, l := range lines {
		if err := d.DrawText(l.row, 0, l.text, l.style); err != nil {
			return err
		}
	}
	return nil
}

// resultFooterRow places the "press any key" line below the result text.
func (r *Runner) resultFooterRow(res Result) int {
	if res.Outcome() != OutcomePerfect {
		return 7
	}
	n := 1
	if lines, ok := r.congratsLines(); ok {
		n = len(lines)
	}
	return 4 + n + 1
}

// congratsLines reads the optional congratulations file.
func (r *Runner) congratsLines() ([]string, bool) {
	if r.CongratsPath == "" {
		return nil, false
	}
	b, err := os.ReadFile(r.CongratsPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", r.CongratsPath).Msg("read congratulations file")
		}
		return nil, false
	}
	text := strings.TrimRight(strings.ReplaceAll(string(b), "\r\n", "\n"), "\n")
	return strings.Split(text, "\n"), true
}
