// config.go
//
// Process configuration. A .env file (if present) is loaded first, then the
// environment is parsed into Config. Every variable is optional.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dogmatch/internal/store"
)

const (
	backendFile   = "file"
	backendSQLite = "sqlite"
	backendMemory = "memory"
)

type Config struct {
	ResultsFile  string `env:"DOGMATCH_RESULTS_FILE" envDefault:"game_results.txt"`
	CongratsFile string `env:"DOGMATCH_CONGRATS_FILE" envDefault:"congratulations.txt"`
	Store        string `env:"DOGMATCH_STORE" envDefault:"file"`
	DBPath       string `env:"DOGMATCH_DB" envDefault:"data/results.db"`
	LogFile      string `env:"DOGMATCH_LOG_FILE" envDefault:"dogmatch.log"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
}

func loadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	return cfg, nil
}

// setupLogging points the global logger at the log file. The screen belongs
// to the game, so nothing is ever logged to stdout. The returned closer
// releases the file.
func setupLogging(cfg Config) io.Closer {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	var out io.Writer = io.Discard
	var closer io.Closer = io.NopCloser(nil)
	if cfg.LogFile != "" {
		if dir := filepath.Dir(cfg.LogFile); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			out, closer = f, f
		}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closer
}

// openStore builds the configured result store. A SQLite database that
// cannot be opened falls back to an in-memory store for this run.
func openStore(cfg Config) (store.Store, func()) {
	switch cfg.Store {
	case backendSQLite:
		s, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.DBPath).Msg("sqlite unavailable; results kept in memory")
			return store.NewMemoryStore(), func() {}
		}
		return s, func() { _ = s.Close() }
	case backendMemory:
		return store.NewMemoryStore(), func() {}
	case backendFile, "":
	default:
		log.Warn().Str("store", cfg.Store).Msg("unknown store; using results file")
	}
	return store.NewFileStore(cfg.ResultsFile), func() {}
}
