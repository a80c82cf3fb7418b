// Package board groups tasks into status columns and renders them.
package board

import "github.com/kazz187/agileboard/internal/task"

type Column struct {
	Status task.Status
	Tasks  []*task.Task
}

type Board struct {
	Title   string
	Columns []Column
}

// Group partitions tasks into one column per status, in a single pass.
// Columns follow task.Statuses() and tasks keep their relative order.
func Group(title string, tasks []*task.Task) Board {
	statuses := task.Statuses()
	b := Board{
		Title:   title,
		Columns: make([]Column, len(statuses)),
	}
	index := make(map[task.Status]int, len(statuses))
	for i, s := range statuses {
		b.Columns[i] = Column{Status: s}
		index[s] = i
	}
	for _, t := range tasks {
		i, ok := index[t.Status()]
		if !ok {
			continue
		}
		b.Columns[i].Tasks = append(b.Columns[i].Tasks, t)
	}
	return b
}

// Counts returns the number of tasks per status. Every status is present.
func (b Board) Counts() map[task.Status]int {
	counts := make(map[task.Status]int, len(b.Columns))
	for _, c := range b.Columns {
		counts[c.Status] = len(c.Tasks)
	}
	return counts
}
