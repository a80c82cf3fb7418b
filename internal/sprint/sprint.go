// Package sprint groups tasks into a named, time-boxed iteration held in
// memory. Tasks are identified by title, compared case-insensitively.
package sprint

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/kazz187/agileboard/internal/board"
	"github.com/kazz187/agileboard/internal/task"
	"github.com/kazz187/agileboard/pkg/cerr"
)

// Sprint owns an ordered list of tasks. Start and End are descriptive and
// are not checked against task due dates.
type Sprint struct {
	Name  string
	Start time.Time
	End   time.Time

	tasks []*task.Task
}

func New(name string, start, end time.Time) *Sprint {
	return &Sprint{
		Name:  name,
		Start: start,
		End:   end,
	}
}

// AddTask appends t. Duplicate titles are allowed; lookups return the first.
func (s *Sprint) AddTask(t *task.Task) {
	s.tasks = append(s.tasks, t)
}

func (s *Sprint) index(title string) int {
	return slices.IndexFunc(s.tasks, func(t *task.Task) bool {
		return strings.EqualFold(t.Title, title)
	})
}

// TaskByTitle returns the first task whose title matches, ignoring case.
func (s *Sprint) TaskByTitle(title string) (*task.Task, bool) {
	i := s.index(title)
	if i < 0 {
		return nil, false
	}
	return s.tasks[i], true
}

// RemoveTask removes the first task whose title matches, ignoring case.
func (s *Sprint) RemoveTask(title string) error {
	i := s.index(title)
	if i < 0 {
		return cerr.NewError(cerr.NotFound, fmt.Sprintf("task '%s' not found", title), nil)
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	slog.Info("task removed", "sprint", s.Name, "title", title)
	return nil
}

func (s *Sprint) ReassignTask(title, assignee string) error {
	t, ok := s.TaskByTitle(title)
	if !ok {
		return cerr.NewError(cerr.NotFound, fmt.Sprintf("task '%s' not found", title), nil)
	}
	prev := t.Reassign(assignee)
	slog.Info("task reassigned", "sprint", s.Name, "title", t.Title, "from", task.DisplayAssignee(prev), "to", task.DisplayAssignee(assignee))
	return nil
}

// Tasks returns the tasks in insertion order.
func (s *Sprint) Tasks() []*task.Task {
	return slices.Clone(s.tasks)
}

// Status counts tasks per status. All statuses are present, even at zero.
func (s *Sprint) Status() map[task.Status]int {
	return s.Board().Counts()
}

// Overdue yields the tasks overdue at now, in sprint order. The predicate
// is evaluated lazily as the sequence is consumed.
func (s *Sprint) Overdue(now time.Time) iter.Seq[*task.Task] {
	return func(yield func(*task.Task) bool) {
		for _, t := range s.tasks {
			if t.IsOverdue(now) && !yield(t) {
				return
			}
		}
	}
}

func (s *Sprint) Board() board.Board {
	return board.Group(s.Name, s.tasks)
}

func (s *Sprint) ListAll(w io.Writer, opts ...board.RendererOption) {
	board.NewRenderer(w, opts...).TaskList(fmt.Sprintf("All Tasks in %s", s.Name), s.tasks)
}

func (s *Sprint) ShowBoard(w io.Writer, opts ...board.RendererOption) {
	board.NewRenderer(w, opts...).SprintBoard(s.Board())
}
