package task

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/agileboard/pkg/cerr"
)

func clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewTask(t *testing.T) {
	created := time.Date(2025, 7, 8, 9, 30, 0, 0, time.UTC)
	task := New("Login Page", "Develop frontend login", WithAssignee("Carol"), WithClock(clock(created)))

	assert.Equal(t, "Login Page", task.Title)
	assert.Equal(t, "Develop frontend login", task.Description)
	assert.Equal(t, StatusToDo, task.Status())
	assert.Equal(t, "Carol", task.Assignee())
	assert.True(t, task.CreatedAt().Time().Equal(created))
	assert.Equal(t, "2025-07-08T09:30:00Z", task.CreatedAt().String())

	_, ok := task.DueDate()
	assert.False(t, ok)
}

func TestNewTaskAcceptsEmptyFields(t *testing.T) {
	task := New("", "")
	assert.Equal(t, StatusToDo, task.Status())
	assert.Equal(t, " [To Do] - Unassigned", task.String())
}

func TestUpdateStatus(t *testing.T) {
	task := New("Setup CI/CD", "Configure Jenkins and Docker")

	require.NoError(t, task.UpdateStatus("Done"))
	assert.Equal(t, StatusDone, task.Status())

	// Done is not terminal.
	require.NoError(t, task.UpdateStatus("To Do"))
	assert.Equal(t, StatusToDo, task.Status())

	err := task.UpdateStatus("Blocked")
	assert.True(t, cerr.IsCode(err, cerr.InvalidArgument))
	assert.Equal(t, StatusToDo, task.Status())

	// Exact match only.
	assert.Error(t, task.UpdateStatus("done"))
	assert.Equal(t, StatusToDo, task.Status())
}

func TestStatusAlwaysInEnumeration(t *testing.T) {
	inputs := []string{"To Do", "In Progress", "Done", "", "Bogus", "DONE", "in progress", "Done "}
	rng := rand.New(rand.NewPCG(1, 2))

	for run := 0; run < 50; run++ {
		task := New("t", "d")
		for step := 0; step < 30; step++ {
			in := inputs[rng.IntN(len(inputs))]
			before := task.Status()
			err := task.UpdateStatus(in)
			require.True(t, task.Status().Valid())
			if err != nil {
				require.Equal(t, before, task.Status())
			} else {
				require.Equal(t, Status(in), task.Status())
			}
		}
	}
}

func TestReassign(t *testing.T) {
	task := New("Login Page", "Develop frontend login", WithAssignee("Carol"))

	assert.Equal(t, "Carol", task.Reassign("David"))
	assert.Equal(t, "David", task.Assignee())
	assert.Equal(t, "Login Page [To Do] - David", task.String())

	assert.Equal(t, "David", task.Reassign(""))
	assert.Equal(t, "Login Page [To Do] - Unassigned", task.String())
}

func TestIsOverdueScenario(t *testing.T) {
	task := New("Setup CI/CD", "Configure Jenkins and Docker",
		WithAssignee("Alice"),
		WithDueDate(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)))
	now := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)

	assert.True(t, task.IsOverdue(now))

	require.NoError(t, task.UpdateStatus("Done"))
	assert.False(t, task.IsOverdue(now))
}

func TestIsOverdueFalseCases(t *testing.T) {
	now := time.Date(2025, 7, 20, 12, 0, 0, 0, time.UTC)

	noDue := New("a", "b")
	assert.False(t, noDue.IsOverdue(now))

	future := New("a", "b", WithDueDate(now.Add(time.Hour)))
	assert.False(t, future.IsOverdue(now))

	// Strictly in the past.
	exact := New("a", "b", WithDueDate(now))
	assert.False(t, exact.IsOverdue(now))

	past := New("a", "b", WithDueDate(now.Add(-time.Hour)))
	require.NoError(t, past.UpdateStatus("In Progress"))
	assert.True(t, past.IsOverdue(now))
	require.NoError(t, past.UpdateStatus("Done"))
	assert.False(t, past.IsOverdue(now))
}

func TestSummary(t *testing.T) {
	task := New("Database Schema", "Design initial DB schema", WithID(1720000000000))
	assert.Equal(t, "ID: 1720000000000 | Status: To Do        | Title: Database Schema", task.Summary())
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{
		"To Do":          StatusToDo,
		"to do":          StatusToDo,
		"  IN   progress": StatusInProgress,
		"done":           StatusDone,
	} {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStatus("Bogus")
	assert.True(t, cerr.IsCode(err, cerr.InvalidArgument))
	assert.Contains(t, cerr.Message(err), "Must be one of: To Do, In Progress, Done")
}

func TestStatusesIsACopy(t *testing.T) {
	s := Statuses()
	s[0] = "Blocked"
	assert.Equal(t, []Status{StatusToDo, StatusInProgress, StatusDone}, Statuses())
}
