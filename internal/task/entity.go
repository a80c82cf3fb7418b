package task

import (
	"fmt"
	"time"
)

// Task is a single tracked work item.
//
// Status, assignee and timestamps are only changed through methods so that
// the status is always one of Statuses().
type Task struct {
	ID          int64
	Title       string
	Description string

	assignee  string
	status    Status
	createdAt Timestamp
	dueDate   *Timestamp
}

type Option func(*options)

type options struct {
	id       int64
	assignee string
	due      *Timestamp
	now      func() time.Time
}

func WithID(id int64) Option {
	return func(o *options) { o.id = id }
}

func WithAssignee(assignee string) Option {
	return func(o *options) { o.assignee = assignee }
}

func WithDueDate(due time.Time) Option {
	return func(o *options) {
		ts := NewTimestamp(due)
		o.due = &ts
	}
}

// WithClock sets the clock used for the creation timestamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates a task in status To Do, timestamped now. Title and
// description are not validated.
func New(title, description string, opts ...Option) *Task {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Task{
		ID:          o.id,
		Title:       title,
		Description: description,
		assignee:    o.assignee,
		status:      StatusToDo,
		createdAt:   NewTimestamp(o.now()),
		dueDate:     o.due,
	}
}

func (t *Task) Status() Status { return t.status }

func (t *Task) Assignee() string { return t.assignee }

func (t *Task) CreatedAt() Timestamp { return t.createdAt }

// DueDate reports the due date, if any.
func (t *Task) DueDate() (Timestamp, bool) {
	if t.dueDate == nil {
		return Timestamp{}, false
	}
	return *t.dueDate, true
}

// UpdateStatus moves the task to status. Any status may follow any other;
// a value outside the enumeration is rejected and the task is left as is.
func (t *Task) UpdateStatus(status string) error {
	if err := ValidateStatus(status); err != nil {
		return err
	}
	t.status = Status(status)
	return nil
}

// Reassign replaces the assignee and returns the previous one. An empty
// assignee unassigns the task.
func (t *Task) Reassign(assignee string) string {
	prev := t.assignee
	t.assignee = assignee
	return prev
}

// IsOverdue reports whether the task has a due date strictly before now and
// is not done.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.dueDate == nil || t.dueDate.IsZero() || t.status == StatusDone {
		return false
	}
	return now.After(t.dueDate.Time())
}

func (t *Task) String() string {
	return fmt.Sprintf("%s [%s] - %s", t.Title, t.status, DisplayAssignee(t.assignee))
}

// Summary is the one-line form used by the persistent board.
func (t *Task) Summary() string {
	return fmt.Sprintf("ID: %d | Status: %-12s | Title: %s", t.ID, t.status, t.Title)
}

// DisplayAssignee is the assignee as shown to users.
func DisplayAssignee(assignee string) string {
	if assignee == "" {
		return "Unassigned"
	}
	return assignee
}
