// main.go
//
// Entry point for the dog matching game.
// Responsibilities:
//   - Load configuration (.env + environment) and point logging at a file.
//   - Load the embedded breed catalog.
//   - Open the result store selected by DOGMATCH_STORE.
//   - Take over the terminal and run the main menu until the player exits.
//
// Exit codes: 0 on a normal exit, 1 when the terminal is unusable,
// 130 on Ctrl-C. The terminal is restored on every path.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dogmatch/internal/breeds"
	"github.com/robalobadob/dogmatch/internal/display"
	"github.com/robalobadob/dogmatch/internal/game"
	"github.com/robalobadob/dogmatch/internal/menu"
	"github.com/robalobadob/dogmatch/internal/terminal"
)

const (
	feedbackPause = 2 * time.Second
	invalidPause  = time.Second
	goodbyePause  = 2 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logs := setupLogging(cfg)
	defer logs.Close()

	catalog, err := breeds.Catalog()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load breed catalog")
	}

	results, closeStore := openStore(cfg)
	defer closeStore()

	tty := terminal.New(os.Stdin)
	if err := tty.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "dogmatch:", err)
		return 1
	}
	defer tty.Close()
	defer func() {
		if p := recover(); p != nil {
			_ = tty.Close()
			panic(p)
		}
	}()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigs)
	go func() {
		select {
		case s := <-sigs:
			log.Info().Str("signal", s.String()).Msg("terminating")
			_ = tty.Close()
			os.Exit(1)
		case <-ctx.Done():
		}
	}()

	runner := &game.Runner{
		Display:      tty,
		Store:        results,
		Catalog:      catalog,
		CongratsPath: cfg.CongratsFile,
		Pause:        feedbackPause,
	}
	m := &menu.Menu{
		Display: tty,
		Game: menu.PlayerFunc(func(ctx context.Context) error {
			_, err := runner.Play(ctx)
			return err
		}),
		History:      results,
		InvalidPause: invalidPause,
		GoodbyePause: goodbyePause,
	}

	log.Info().Str("store", cfg.Store).Msg("starting dogmatch")
	err = m.Run(ctx)
	_ = tty.Close()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, display.ErrInterrupted):
		fmt.Fprintln(os.Stderr, "dogmatch: interrupted")
		return 130
	default:
		log.Error().Err(err).Msg("display failure")
		fmt.Fprintln(os.Stderr, "dogmatch:", err)
		return 1
	}
}
