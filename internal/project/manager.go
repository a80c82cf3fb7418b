// Package project manages the persistent task list behind the interactive
// board. Every mutation rewrites the whole backing document.
package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/kazz187/agileboard/internal/board"
	"github.com/kazz187/agileboard/internal/task"
	"github.com/kazz187/agileboard/pkg/cerr"
	"github.com/kazz187/agileboard/pkg/idgen"
)

const BoardTitle = "AGILE PROJECT BOARD (Kanban View)"

type Option func(*Manager)

// WithClock sets the clock used for creation timestamps and new ids.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

type Manager struct {
	repo  task.Repository
	tasks []*task.Task
	ids   *idgen.Generator
	now   func() time.Time
	log   *slog.Logger
}

// NewManager loads the task list from repo. A missing backing file starts an
// empty board; an undecodable one is discarded with a warning and replaced
// on the next save. Any other read failure is returned.
func NewManager(ctx context.Context, repo task.Repository, opts ...Option) (*Manager, error) {
	m := &Manager{
		repo: repo,
		now:  time.Now,
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.ids = idgen.New(idgen.WithClock(m.now))

	tasks, err := repo.Load(ctx)
	switch {
	case err == nil:
		m.tasks = tasks
		for _, t := range tasks {
			m.ids.Observe(t.ID)
		}
		m.log.InfoContext(ctx, "data loaded", "tasks", len(tasks))
	case cerr.IsCode(err, cerr.NotFound):
		m.log.InfoContext(ctx, "no existing data file, starting fresh")
	case cerr.IsCode(err, cerr.DataLoss):
		m.log.WarnContext(ctx, "could not decode data file, starting with an empty state", "error", err)
	default:
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return m, nil
}

// Save rewrites the backing document with the current task list.
func (m *Manager) Save(ctx context.Context) error {
	if err := m.repo.Save(ctx, m.tasks); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	m.log.DebugContext(ctx, "data saved", "tasks", len(m.tasks))
	return nil
}

// AddTask creates a To Do task with a fresh id, appends it and saves. The
// task is not kept when the save fails.
func (m *Manager) AddTask(ctx context.Context, title, description string, opts ...task.Option) (*task.Task, error) {
	id, err := m.ids.Next()
	if err != nil {
		return nil, cerr.NewError(cerr.Internal, "no task id available", err)
	}
	opts = append([]task.Option{task.WithID(id), task.WithClock(m.now)}, opts...)
	t := task.New(title, description, opts...)
	m.tasks = append(m.tasks, t)
	if err := m.Save(ctx); err != nil {
		m.tasks = m.tasks[:len(m.tasks)-1]
		return nil, err
	}
	m.log.InfoContext(ctx, "task added", "id", t.ID, "title", t.Title)
	return t, nil
}

// TaskByID looks a task up by its id in text form. Text that is not an
// integer is reported as not found.
func (m *Manager) TaskByID(id string) (*task.Task, error) {
	i, err := m.index(id)
	if err != nil {
		return nil, err
	}
	return m.tasks[i], nil
}

func (m *Manager) index(id string) (int, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err == nil {
		if i := slices.IndexFunc(m.tasks, func(t *task.Task) bool { return t.ID == n }); i >= 0 {
			return i, nil
		}
	}
	return -1, cerr.NewError(cerr.NotFound, fmt.Sprintf("task with ID '%s' not found", id), nil)
}

// UpdateTaskStatus moves a task to status and saves. It reports false
// without saving when the task is already in that status. Unknown ids,
// invalid statuses and failed saves leave the task untouched.
func (m *Manager) UpdateTaskStatus(ctx context.Context, id, status string) (bool, error) {
	t, err := m.TaskByID(id)
	if err != nil {
		return false, err
	}
	if err := task.ValidateStatus(status); err != nil {
		return false, err
	}
	if t.Status() == task.Status(status) {
		return false, nil
	}
	prev := t.Status()
	if err := t.UpdateStatus(status); err != nil {
		return false, err
	}
	if err := m.Save(ctx); err != nil {
		t.UpdateStatus(string(prev))
		return false, err
	}
	m.log.InfoContext(ctx, "task status updated", "id", t.ID, "from", string(prev), "to", status)
	return true, nil
}

// ReassignTask sets the assignee of a task and saves. An empty assignee
// unassigns it. A failed save restores the previous assignee.
func (m *Manager) ReassignTask(ctx context.Context, id, assignee string) error {
	t, err := m.TaskByID(id)
	if err != nil {
		return err
	}
	prev := t.Reassign(assignee)
	if err := m.Save(ctx); err != nil {
		t.Reassign(prev)
		return err
	}
	m.log.InfoContext(ctx, "task reassigned", "id", t.ID, "from", task.DisplayAssignee(prev), "to", task.DisplayAssignee(assignee))
	return nil
}

// RemoveTask deletes a task and saves, returning the removed task. A failed
// save puts the task back in place.
func (m *Manager) RemoveTask(ctx context.Context, id string) (*task.Task, error) {
	i, err := m.index(id)
	if err != nil {
		return nil, err
	}
	t := m.tasks[i]
	m.tasks = slices.Delete(m.tasks, i, i+1)
	if err := m.Save(ctx); err != nil {
		m.tasks = slices.Insert(m.tasks, i, t)
		return nil, err
	}
	m.log.InfoContext(ctx, "task removed", "id", t.ID, "title", t.Title)
	return t, nil
}

// Tasks returns the tasks in insertion order.
func (m *Manager) Tasks() []*task.Task {
	return slices.Clone(m.tasks)
}

// Overdue returns the tasks overdue at now, in insertion order.
func (m *Manager) Overdue(now time.Time) []*task.Task {
	var out []*task.Task
	for _, t := range m.tasks {
		if t.IsOverdue(now) {
			out = append(out, t)
		}
	}
	return out
}

func (m *Manager) Board() board.Board {
	return board.Group(BoardTitle, m.tasks)
}

func (m *Manager) DisplayBoard(w io.Writer, opts ...board.RendererOption) {
	board.NewRenderer(w, opts...).Kanban(m.Board())
}
