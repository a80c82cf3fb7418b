// Package filewatch reports content changes of a single file.
//
// The parent directory is watched rather than the file itself so that atomic
// replacements (write temp file, rename over the target) are seen. Bursts of
// events are debounced and the callback only runs when the SHA256 of the file
// actually changed.
package filewatch

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the delay after an fsnotify event before checking the checksum.
const DefaultDebounce = 100 * time.Millisecond

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	lastHash [sha256.Size]byte
}

// New starts watching path. Events that arrive before Run is called are
// buffered by fsnotify and are not lost.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.lastHash, err = HashFile(abs)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	w.watcher = fw
	return w, nil
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run calls onChange every time the file content changes, until ctx is done
// or the watcher is closed. onChange runs on the caller's goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	name := filepath.Base(w.path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			slog.Debug("detected filesystem event", "op", event.Op.String(), "path", event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			hash, err := HashFile(w.path)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				slog.Warn("failed to hash watched file", "path", w.path, "error", err)
				continue
			}
			if hash == w.lastHash {
				continue
			}
			w.lastHash = hash
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("fsnotify error", "error", err)
		}
	}
}

// HashFile returns the SHA256 of the file at path. A missing file hashes to
// the zero value together with an error wrapping os.ErrNotExist.
func HashFile(path string) ([sha256.Size]byte, error) {
	var sum [sha256.Size]byte
	f, err := os.Open(path)
	if err != nil {
		return sum, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return sum, fmt.Errorf("failed to hash %s: %w", path, err)
	}
	copy(sum[:], h.Sum(nil))
	return sum, nil
}
