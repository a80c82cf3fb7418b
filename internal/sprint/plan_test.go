package sprint

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/agileboard/internal/task"
	"github.com/kazz187/agileboard/pkg/cerr"
)

const samplePlan = `
name  = "Sprint 2"
start = 2025-07-22
end   = 2025-08-05

[[tasks]]
title       = "Setup CI/CD"
description = "Configure Jenkins and Docker"
assignee    = "Alice"
due         = 2025-07-15
status      = "In Progress"

[[tasks]]
title       = "Login Page"
description = "Develop frontend login"
`

func loadPlanText(t *testing.T, text string) (*Plan, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sprint.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return LoadPlan(path)
}

func TestLoadPlan(t *testing.T) {
	p, err := loadPlanText(t, samplePlan)
	require.NoError(t, err)
	assert.Equal(t, "Sprint 2", p.Name)
	assert.Equal(t, 2025, p.Start.Year())
	assert.Equal(t, time.August, p.End.Month())
	require.Len(t, p.Tasks, 2)
	require.NotNil(t, p.Tasks[0].Due)
	assert.Equal(t, 15, p.Tasks[0].Due.Day())
	assert.Nil(t, p.Tasks[1].Due)
}

func TestPlanBuild(t *testing.T) {
	p, err := loadPlanText(t, samplePlan)
	require.NoError(t, err)

	created := time.Date(2025, 7, 22, 9, 0, 0, 0, time.UTC)
	s, err := p.Build(func() time.Time { return created })
	require.NoError(t, err)

	assert.Equal(t, "Sprint 2", s.Name)
	require.Equal(t, 2, len(s.Tasks()))

	ci, ok := s.TaskByTitle("Setup CI/CD")
	require.True(t, ok)
	assert.Equal(t, task.StatusInProgress, ci.Status())
	assert.Equal(t, "Alice", ci.Assignee())
	assert.True(t, ci.CreatedAt().Time().Equal(created))
	assert.True(t, ci.IsOverdue(created))

	login, ok := s.TaskByTitle("Login Page")
	require.True(t, ok)
	assert.Equal(t, task.StatusToDo, login.Status())
	assert.Empty(t, login.Assignee())
}

func TestPlanRejectsUnknownKeys(t *testing.T) {
	_, err := loadPlanText(t, "name = \"S\"\n[[tasks]]\ntitle = \"x\"\npriority = 3\n")
	assert.True(t, cerr.IsCode(err, cerr.InvalidArgument))
	assert.ErrorContains(t, err, "tasks.priority")
}

func TestPlanRejectsInvalidStatus(t *testing.T) {
	p, err := loadPlanText(t, "name = \"S\"\n[[tasks]]\ntitle = \"x\"\nstatus = \"Blocked\"\n")
	require.NoError(t, err)

	_, err = p.Build(nil)
	assert.True(t, cerr.IsCode(err, cerr.InvalidArgument))
	assert.ErrorContains(t, err, "task 1 (x)")
}

func TestPlanRequiresName(t *testing.T) {
	p, err := loadPlanText(t, "[[tasks]]\ntitle = \"x\"\n")
	require.NoError(t, err)

	_, err = p.Build(nil)
	assert.True(t, cerr.IsCode(err, cerr.InvalidArgument))
}

func TestLoadPlanMissingFile(t *testing.T) {
	_, err := LoadPlan(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestPlanSyntaxError(t *testing.T) {
	_, err := loadPlanText(t, "name = ")
	assert.True(t, cerr.IsCode(err, cerr.InvalidArgument))
}
