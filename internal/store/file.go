package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/robalobadob/dogmatch/internal/game"
)

// FileStore appends result lines to a plain text file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. The file and its directory
// are created on first Append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path is the backing file.
func (s *FileStore) Path() string { return s.path }

// Append writes one line for r.
func (s *FileStore) Append(ctx context.Context, r game.Result) error {
	if err := ctx.Err(); err != nil {
		return errWrite(err)
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errWrite(fmt.Errorf("mkdir %s: %w", dir, err))
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errWrite(err)
	}
	if _, err := fmt.Fprintln(f, FormatLine(r)); err != nil {
		_ = f.Close()
		return errWrite(err)
	}
	if err := f.Close(); err != nil {
		return errWrite(err)
	}
	return nil
}

// All reads the file from the start on every iteration. A missing file
// yields nothing.
func (s *FileStore) All(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := os.Open(s.path)
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		if err != nil {
			readErr(err)(yield)
			return
		}
		defer f.Close()

		sc := bufio.NewScanner(f)
		for sc.Scan() {
			if err := ctx.Err(); err != nil {
				readErr(err)(yield)
				return
			}
			if sc.Text() == "" {
				continue
			}
			if !yield(sc.Text(), nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			readErr(err)(yield)
		}
	}
}

func errWrite(err error) error {
	return fmt.Errorf("%w: %w", ErrWrite, err)
}
