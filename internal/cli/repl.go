// Package cli implements the interactive prompt loop over a project board.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/kazz187/agileboard/internal/board"
	"github.com/kazz187/agileboard/internal/project"
	"github.com/kazz187/agileboard/internal/task"
	"github.com/kazz187/agileboard/pkg/cerr"
	"github.com/kazz187/agileboard/pkg/clog"
	"github.com/kazz187/agileboard/pkg/panicerr"
)

const Prompt = "PM > "

type Option func(*REPL)

func WithRendererOptions(opts ...board.RendererOption) Option {
	return func(r *REPL) {
		r.renderOpts = opts
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *REPL) {
		r.now = now
	}
}

type REPL struct {
	manager    *project.Manager
	in         *bufio.Reader
	readErr    error
	out        io.Writer
	renderOpts []board.RendererOption
	now        func() time.Time
}

func New(m *project.Manager, in io.Reader, out io.Writer, opts ...Option) *REPL {
	r := &REPL{
		manager: m,
		in:      bufio.NewReader(in),
		out:     out,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads commands until "exit", end of input or ctx is done. A command
// that fails unexpectedly or panics does not end the session: the error is
// reported, the board is saved and the loop carries on.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "\n--- Welcome to the Agile Project Manager ---")
	r.printHelp()

	for ctx.Err() == nil {
		fmt.Fprint(r.out, Prompt)
		line, ok := r.readLine()
		if !ok {
			fmt.Fprintln(r.out)
			return r.readErr
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmdCtx := clog.ContextWithSlog(ctx)
		var exit bool
		err := panicerr.SafeContext(func(ctx context.Context) error {
			var err error
			exit, err = r.execute(ctx, line)
			return err
		})(cmdCtx)
		if err != nil {
			r.handleFailure(cmdCtx, err)
		}
		if exit {
			return nil
		}
	}
	return nil
}

// readLine returns the next line without its line ending. Lines have no
// length limit. A final line without a newline is still returned.
func (r *REPL) readLine() (string, bool) {
	line, err := r.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			r.readErr = err
			return "", false
		}
		if line == "" {
			return "", false
		}
	}
	return strings.TrimRight(line, "\r\n"), true
}

func (r *REPL) handleFailure(ctx context.Context, err error) {
	clog.AddError(ctx, err)
	slog.ErrorContext(ctx, "command failed")
	fmt.Fprintf(r.out, "An unexpected error occurred: %v\n", err)
	if err := r.manager.Save(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to save after error", "error", err)
	}
	fmt.Fprintln(r.out, "Please try again.")
}

// splitFirst splits off the first whitespace separated word.
func splitFirst(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func (r *REPL) execute(ctx context.Context, line string) (bool, error) {
	command, args := splitFirst(line)
	switch strings.ToLower(command) {
	case "exit", "quit":
		fmt.Fprintln(r.out, "Goodbye! All tasks have been saved.")
		return true, nil
	case "help":
		r.printHelp()
	case "list":
		fmt.Fprintf(r.out, "\nAvailable Statuses: %s\n", task.StatusNames())
	case "board":
		r.manager.DisplayBoard(r.out, r.renderOpts...)
	case "overdue":
		r.overdue()
	case "add":
		return false, r.add(ctx, args)
	case "move":
		return false, r.move(ctx, args)
	case "assign":
		return false, r.assign(ctx, args)
	case "remove":
		return false, r.remove(ctx, args)
	default:
		fmt.Fprintf(r.out, "Unknown command: '%s'. Type 'help' for available commands.\n", command)
	}
	return false, nil
}

// report prints expected failures such as unknown ids or invalid statuses
// and passes anything else back to the loop.
func (r *REPL) report(err error) error {
	switch cerr.CodeOf(err) {
	case cerr.OK:
		return nil
	case cerr.NotFound, cerr.InvalidArgument:
		fmt.Fprintf(r.out, "\nError: %s\n", cerr.Message(err))
		return nil
	default:
		return err
	}
}

func (r *REPL) add(ctx context.Context, title string) error {
	if title == "" {
		fmt.Fprintln(r.out, "Usage: add <Title of Task> (Press ENTER for description)")
		return nil
	}
	fmt.Fprintf(r.out, "Enter description for '%s': ", title)
	description, _ := r.readLine()

	t, err := r.manager.AddTask(ctx, title, strings.TrimSpace(description))
	if err != nil {
		return r.report(err)
	}
	fmt.Fprintf(r.out, "\nTask '%s' added with ID: %d.\n", t.Title, t.ID)
	return nil
}

func (r *REPL) move(ctx context.Context, args string) error {
	id, statusText := splitFirst(args)
	if id == "" || statusText == "" {
		fmt.Fprintf(r.out, "Usage: move <Task ID> <New Status> (Statuses: %s)\n", task.StatusNames())
		return nil
	}
	// Accept "in progress" for "In Progress"; anything unrecognized is
	// passed through so the manager reports it.
	if status, err := task.ParseStatus(statusText); err == nil {
		statusText = string(status)
	}

	changed, err := r.manager.UpdateTaskStatus(ctx, id, statusText)
	if err != nil {
		return r.report(err)
	}
	if changed {
		fmt.Fprintf(r.out, "\nTask %s status updated to '%s'.\n", id, statusText)
	} else {
		fmt.Fprintf(r.out, "\nTask %s is already in status '%s'.\n", id, statusText)
	}
	return nil
}

func (r *REPL) assign(ctx context.Context, args string) error {
	id, assignee := splitFirst(args)
	if id == "" {
		fmt.Fprintln(r.out, "Usage: assign <Task ID> [Assignee] (omit the assignee to unassign)")
		return nil
	}
	if err := r.manager.ReassignTask(ctx, id, assignee); err != nil {
		return r.report(err)
	}
	if assignee == "" {
		fmt.Fprintf(r.out, "\nTask %s is now unassigned.\n", id)
	} else {
		fmt.Fprintf(r.out, "\nTask %s reassigned to %s.\n", id, assignee)
	}
	return nil
}

func (r *REPL) remove(ctx context.Context, id string) error {
	if id == "" {
		fmt.Fprintln(r.out, "Usage: remove <Task ID>")
		return nil
	}
	t, err := r.manager.RemoveTask(ctx, id)
	if err != nil {
		return r.report(err)
	}
	fmt.Fprintf(r.out, "\nTask '%s' removed.\n", t.Title)
	return nil
}

func (r *REPL) overdue() {
	tasks := r.manager.Overdue(r.now())
	if len(tasks) == 0 {
		fmt.Fprintln(r.out, "\nNo overdue tasks.")
		return
	}
	board.NewRenderer(r.out, r.renderOpts...).TaskSummaries("Overdue Tasks", tasks)
}

func (r *REPL) printHelp() {
	rule := strings.Repeat("~", 30)
	fmt.Fprintf(r.out, "\n%s\nAGILE CLI COMMANDS\n%s\n", rule, rule)
	fmt.Fprintln(r.out, "  add     - Add a new task (e.g., 'add New Feature Title')")
	fmt.Fprintln(r.out, "  move    - Change a task's status (e.g., 'move 1234567890 In Progress')")
	fmt.Fprintln(r.out, "  assign  - Assign a task (e.g., 'assign 1234567890 Alice')")
	fmt.Fprintln(r.out, "  remove  - Remove a task (e.g., 'remove 1234567890')")
	fmt.Fprintln(r.out, "  board   - Display the current Agile board (Kanban)")
	fmt.Fprintln(r.out, "  overdue - List tasks past their due date")
	fmt.Fprintln(r.out, "  list    - List all available statuses")
	fmt.Fprintln(r.out, "  help    - Show this help message")
	fmt.Fprintln(r.out, "  exit    - Exit the application")
	fmt.Fprintf(r.out, "%s\n\n", rule)
}
