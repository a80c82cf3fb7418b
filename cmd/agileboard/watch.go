package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kazz187/agileboard/internal/project"
	"github.com/kazz187/agileboard/internal/task/repositoryimpl"
	"github.com/kazz187/agileboard/pkg/filewatch"
	"github.com/kazz187/agileboard/pkg/storage"
)

// runWatch renders the board, then renders it again every time the data
// file changes until interrupted. It never writes the file.
func runWatch(ctx context.Context, store *storage.LocalStorage, repo *repositoryimpl.FileRepository, debounce time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := store.Resolve(repo.Path())
	w, err := filewatch.New(path, filewatch.WithDebounce(debounce))
	if err != nil {
		return err
	}
	defer w.Close()

	render := func() {
		m, err := project.NewManager(ctx, repo)
		if err != nil {
			slog.ErrorContext(ctx, "failed to reload board", "path", path, "error", err)
			return
		}
		m.DisplayBoard(os.Stdout)
	}

	render()
	fmt.Printf("Watching %s (Ctrl+C to stop)\n", path)
	if err := w.Run(ctx, render); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	slog.InfoContext(ctx, "watch stopped")
	return nil
}
