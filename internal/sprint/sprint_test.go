package sprint

import (
	"bytes"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/agileboard/internal/board"
	"github.com/kazz187/agileboard/internal/task"
	"github.com/kazz187/agileboard/pkg/cerr"
)

func exampleSprint(t *testing.T) *Sprint {
	t.Helper()
	s, err := ExamplePlan().Build(nil)
	require.NoError(t, err)
	return s
}

func titles(ts []*task.Task) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Title
	}
	return out
}

func TestAddTaskKeepsInsertionOrder(t *testing.T) {
	s := New("Sprint 1", time.Time{}, time.Time{})
	s.AddTask(task.New("b", ""))
	s.AddTask(task.New("a", ""))
	s.AddTask(task.New("c", ""))

	assert.Equal(t, []string{"b", "a", "c"}, titles(s.Tasks()))
	assert.Equal(t, 3, len(s.Tasks()))
}

func TestTaskByTitleIsCaseInsensitive(t *testing.T) {
	s := exampleSprint(t)

	got, ok := s.TaskByTitle("setup ci/cd")
	require.True(t, ok)
	assert.Equal(t, "Setup CI/CD", got.Title)

	_, ok = s.TaskByTitle("Deploy")
	assert.False(t, ok)
}

func TestDuplicateTitlesReturnFirst(t *testing.T) {
	s := New("Sprint 1", time.Time{}, time.Time{})
	first := task.New("Login Page", "first")
	s.AddTask(first)
	s.AddTask(task.New("login page", "second"))

	got, ok := s.TaskByTitle("LOGIN PAGE")
	require.True(t, ok)
	assert.Same(t, first, got)

	require.NoError(t, s.RemoveTask("Login Page"))
	got, ok = s.TaskByTitle("login page")
	require.True(t, ok)
	assert.Equal(t, "second", got.Description)
}

func TestRemoveTask(t *testing.T) {
	s := exampleSprint(t)

	require.NoError(t, s.RemoveTask("DATABASE SCHEMA"))
	_, ok := s.TaskByTitle("Database Schema")
	assert.False(t, ok)
	assert.Equal(t, []string{"Setup CI/CD", "Login Page"}, titles(s.Tasks()))

	err := s.RemoveTask("Database Schema")
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
	assert.Equal(t, 2, len(s.Tasks()))
}

func TestReassignTask(t *testing.T) {
	s := exampleSprint(t)

	require.NoError(t, s.ReassignTask("login page", "David"))
	got, _ := s.TaskByTitle("Login Page")
	assert.Equal(t, "David", got.Assignee())

	assert.True(t, cerr.IsCode(s.ReassignTask("nope", "X"), cerr.NotFound))
}

func TestStatusCountsSumToLen(t *testing.T) {
	empty := New("empty", time.Time{}, time.Time{})
	assert.Equal(t, map[task.Status]int{
		task.StatusToDo:       0,
		task.StatusInProgress: 0,
		task.StatusDone:       0,
	}, empty.Status())

	s := exampleSprint(t)
	counts := s.Status()
	assert.Equal(t, map[task.Status]int{
		task.StatusToDo:       1,
		task.StatusInProgress: 1,
		task.StatusDone:       1,
	}, counts)

	sum := 0
	for _, n := range counts {
		sum += n
	}
	assert.Equal(t, len(s.Tasks()), sum)
}

func TestOverdue(t *testing.T) {
	s := exampleSprint(t)
	now := time.Date(2025, 7, 20, 0, 0, 0, 0, time.Local)

	// Database Schema is past due but done; Login Page has no due date.
	assert.Equal(t, []string{"Setup CI/CD"}, titles(slices.Collect(s.Overdue(now))))

	ci, _ := s.TaskByTitle("Setup CI/CD")
	require.NoError(t, ci.UpdateStatus("Done"))
	assert.Empty(t, slices.Collect(s.Overdue(now)))
}

func TestOverdueIsLazyAndOrdered(t *testing.T) {
	now := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	s := New("Sprint 1", time.Time{}, time.Time{})
	for _, title := range []string{"a", "b", "c"} {
		s.AddTask(task.New(title, "", task.WithDueDate(past)))
	}

	var got []string
	for tk := range s.Overdue(now) {
		got = append(got, tk.Title)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)

	// Evaluated at iteration time, not when the sequence was created.
	seq := s.Overdue(now)
	a, _ := s.TaskByTitle("a")
	require.NoError(t, a.UpdateStatus("Done"))
	assert.Equal(t, []string{"b", "c"}, titles(slices.Collect(seq)))
}

func TestShowBoardAndListAll(t *testing.T) {
	s := exampleSprint(t)
	require.NoError(t, s.ReassignTask("Login Page", "David"))

	var buf bytes.Buffer
	s.ShowBoard(&buf, board.WithColor(false))
	assert.Equal(t, "\nSprint: Sprint 1\n"+
		"To Do:\n  - Login Page [To Do] - David\n"+
		"In Progress:\n  - Setup CI/CD [In Progress] - Alice\n"+
		"Done:\n  - Database Schema [Done] - Bob\n", buf.String())

	buf.Reset()
	s.ListAll(&buf, board.WithColor(false))
	assert.Equal(t, "\nAll Tasks in Sprint 1:\n"+
		"  - Setup CI/CD [In Progress] - Alice\n"+
		"  - Database Schema [Done] - Bob\n"+
		"  - Login Page [To Do] - David\n", buf.String())
}
