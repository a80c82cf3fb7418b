package main

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/kazz187/agileboard/internal/board"
	"github.com/kazz187/agileboard/internal/sprint"
)

// runSprint prints the board, progress, task list and overdue tasks of a
// sprint plan. Without a plan file the example sprint is shown, with its
// login page handed over to David.
func runSprint(w io.Writer, path string) error {
	var (
		plan *sprint.Plan
		err  error
	)
	if path != "" {
		if plan, err = sprint.LoadPlan(path); err != nil {
			return err
		}
	} else {
		plan = sprint.ExamplePlan()
	}

	s, err := plan.Build(nil)
	if err != nil {
		return err
	}
	if path == "" {
		if err := s.ReassignTask("Login Page", "David"); err != nil {
			return err
		}
	}

	s.ShowBoard(w)
	board.NewRenderer(w).StatusSummary(s.Status())
	s.ListAll(w)

	overdue := slices.Collect(s.Overdue(time.Now()))
	if len(overdue) == 0 {
		fmt.Fprintln(w, "\nNo overdue tasks.")
		return nil
	}
	board.NewRenderer(w).TaskList("Overdue Tasks", overdue)
	return nil
}
