package board

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/kazz187/agileboard/internal/task"
)

const ruleWidth = 80

type RendererOption func(*Renderer)

// WithColor forces color on or off. By default fatih/color decides from the
// terminal and NO_COLOR.
func WithColor(enabled bool) RendererOption {
	return func(r *Renderer) {
		r.color = enabled
	}
}

type Renderer struct {
	w     io.Writer
	color bool
}

func NewRenderer(w io.Writer, opts ...RendererOption) *Renderer {
	r := &Renderer{
		w:     w,
		color: !color.NoColor,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func statusColor(s task.Status) color.Attribute {
	switch s {
	case task.StatusInProgress:
		return color.FgYellow
	case task.StatusDone:
		return color.FgGreen
	default:
		return color.FgCyan
	}
}

// SprintBoard renders every column as a heading followed by its tasks.
func (r *Renderer) SprintBoard(b Board) {
	fmt.Fprintln(r.w)
	r.paint(color.Bold).Fprintf(r.w, "Sprint: %s\n", b.Title)
	for _, c := range b.Columns {
		r.paint(statusColor(c.Status), color.Bold).Fprintf(r.w, "%s:\n", c.Status)
		for _, t := range c.Tasks {
			fmt.Fprintf(r.w, "  - %s\n", t)
		}
	}
}

// TaskList renders tasks in the given order under a heading.
func (r *Renderer) TaskList(heading string, tasks []*task.Task) {
	fmt.Fprintln(r.w)
	r.paint(color.Bold).Fprintf(r.w, "%s:\n", heading)
	for _, t := range tasks {
		fmt.Fprintf(r.w, "  - %s\n", t)
	}
}

// TaskSummaries renders tasks with their ids, one Summary line each.
func (r *Renderer) TaskSummaries(heading string, tasks []*task.Task) {
	fmt.Fprintln(r.w)
	r.paint(color.Bold).Fprintf(r.w, "%s:\n", heading)
	for _, t := range tasks {
		fmt.Fprintf(r.w, "  %s\n", t.Summary())
	}
}

// Kanban renders the persistent board: a banner, then every column with
// its task count, member ids and titles, or an explicit empty marker.
func (r *Renderer) Kanban(b Board) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, rule)
	r.paint(color.Bold).Fprintf(r.w, "%s%s\n", strings.Repeat(" ", 10), b.Title)
	fmt.Fprintln(r.w, rule)

	for _, c := range b.Columns {
		fmt.Fprintln(r.w)
		r.paint(statusColor(c.Status), color.Bold).
			Fprintf(r.w, "--- %s (%d) ---\n", strings.ToUpper(string(c.Status)), len(c.Tasks))
		if len(c.Tasks) == 0 {
			r.paint(color.Faint).Fprintln(r.w, "  (No tasks in this column)")
		}
		for _, t := range c.Tasks {
			fmt.Fprintf(r.w, "  [%d] %s\n", t.ID, t.Title)
		}
	}
	fmt.Fprintln(r.w, rule)
	fmt.Fprintln(r.w)
}

// StatusSummary renders per-status counts in board order.
func (r *Renderer) StatusSummary(counts map[task.Status]int) {
	parts := make([]string, 0, len(counts))
	for _, s := range task.Statuses() {
		parts = append(parts, fmt.Sprintf("%s: %d", s, counts[s]))
	}
	fmt.Fprintln(r.w)
	r.paint(color.Bold).Fprint(r.w, "Sprint Progress: ")
	fmt.Fprintln(r.w, strings.Join(parts, ", "))
}
