package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/oklog/ulid/v2"

	"github.com/kazz187/agileboard/internal/board"
	"github.com/kazz187/agileboard/internal/cli"
	"github.com/kazz187/agileboard/internal/config"
	"github.com/kazz187/agileboard/internal/project"
	"github.com/kazz187/agileboard/internal/task"
	"github.com/kazz187/agileboard/internal/task/repositoryimpl"
	"github.com/kazz187/agileboard/pkg/cerr"
	"github.com/kazz187/agileboard/pkg/clog"
	"github.com/kazz187/agileboard/pkg/storage"
)

var (
	app = kingpin.New("agileboard", "Track tasks through To Do, In Progress and Done")

	dataDir  = app.Flag("data-dir", "Directory holding the data file").String()
	dataFile = app.Flag("data-file", "Data file name (.json, .yaml or .yml)").String()
	logLevel = app.Flag("log-level", "Log level (debug, info, warn, error)").String()
	noColor  = app.Flag("no-color", "Disable colored output").Bool()

	shellCmd = app.Command("shell", "Start the interactive board").Default()

	addCmd         = app.Command("add", "Add a task")
	addTitle       = addCmd.Arg("title", "Task title").Required().Strings()
	addDescription = addCmd.Flag("description", "Task description").Short('d').String()
	addAssignee    = addCmd.Flag("assignee", "Assignee").Short('a').String()
	addDue         = addCmd.Flag("due", "Due date (YYYY-MM-DD or RFC 3339)").String()

	moveCmd    = app.Command("move", "Change the status of a task")
	moveID     = moveCmd.Arg("id", "Task ID").Required().String()
	moveStatus = moveCmd.Arg("status", "New status").Required().Strings()

	assignCmd  = app.Command("assign", "Assign a task, or unassign it when no name is given")
	assignID   = assignCmd.Arg("id", "Task ID").Required().String()
	assignName = assignCmd.Arg("name", "Assignee").Strings()

	removeCmd = app.Command("remove", "Remove a task")
	removeID  = removeCmd.Arg("id", "Task ID").Required().String()

	boardCmd    = app.Command("board", "Show the Kanban board")
	overdueCmd  = app.Command("overdue", "List overdue tasks")
	statusesCmd = app.Command("statuses", "List the valid statuses")

	sprintCmd  = app.Command("sprint", "Show a sprint plan: board, progress, tasks and overdue tasks")
	sprintPlan = sprintCmd.Arg("plan", "Sprint plan TOML file; the built-in example sprint when omitted").ExistingFile()

	watchCmd = app.Command("watch", "Re-render the board whenever the data file changes")
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load env", "error", err)
		os.Exit(1)
	}
	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	applyDefault(dataDir, env.DataDir)
	applyDefault(dataFile, env.DataFile)
	applyDefault(logLevel, env.LogLevel)

	if *noColor {
		color.NoColor = true
	}
	env.LogLevel = *logLevel
	setupLogger(env)

	ctx := clog.ContextWithSlog(context.Background())
	clog.AddAttribute(ctx, clog.SessionAttributeKey, ulid.Make().String())

	if err := run(ctx, env, command); err != nil {
		slog.ErrorContext(ctx, "command failed", "error", err)
		if cerr.CodeOf(err).Level() < slog.LevelError {
			fmt.Fprintf(os.Stderr, "Error: %s\n", cerr.Message(err))
		}
		os.Exit(1)
	}
}

// applyDefault lets an unset flag fall back to the environment.
func applyDefault(flag *string, def string) {
	if *flag == "" {
		*flag = def
	}
}

func setupLogger(env *config.Env) {
	level := env.SlogLevel()
	var handler slog.Handler
	if env.Env == "local" {
		handler = clog.NewTextHandler(os.Stderr, clog.WithLevel(level), clog.WithColor(!color.NoColor))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(handler)))
}

func run(ctx context.Context, env *config.Env, command string) error {
	switch command {
	case statusesCmd.FullCommand():
		fmt.Println(task.StatusNames())
		return nil
	case sprintCmd.FullCommand():
		return runSprint(os.Stdout, *sprintPlan)
	}

	store, err := storage.NewLocalStorage(*dataDir)
	if err != nil {
		return fmt.Errorf("failed to open data dir: %w", err)
	}
	repo := repositoryimpl.NewFileRepository(store, *dataFile)

	if command == watchCmd.FullCommand() {
		return runWatch(ctx, store, repo, env.Debounce)
	}

	m, err := project.NewManager(ctx, repo, project.WithLogger(slog.Default().With("data_file", *dataFile)))
	if err != nil {
		return err
	}
	renderOpts := []board.RendererOption{board.WithColor(!color.NoColor)}

	switch command {
	case shellCmd.FullCommand():
		return cli.New(m, os.Stdin, os.Stdout, cli.WithRendererOptions(renderOpts...)).Run(ctx)
	case addCmd.FullCommand():
		return runAdd(ctx, m)
	case moveCmd.FullCommand():
		status := strings.Join(*moveStatus, " ")
		if s, err := task.ParseStatus(status); err == nil {
			status = string(s)
		}
		changed, err := m.UpdateTaskStatus(ctx, *moveID, status)
		if err != nil {
			return err
		}
		if changed {
			fmt.Printf("Task %s status updated to '%s'.\n", *moveID, status)
		} else {
			fmt.Printf("Task %s is already in status '%s'.\n", *moveID, status)
		}
	case assignCmd.FullCommand():
		name := strings.Join(*assignName, " ")
		if err := m.ReassignTask(ctx, *assignID, name); err != nil {
			return err
		}
		if name == "" {
			fmt.Printf("Task %s is now unassigned.\n", *assignID)
		} else {
			fmt.Printf("Task %s reassigned to %s.\n", *assignID, name)
		}
	case removeCmd.FullCommand():
		t, err := m.RemoveTask(ctx, *removeID)
		if err != nil {
			return err
		}
		fmt.Printf("Task '%s' removed.\n", t.Title)
	case boardCmd.FullCommand():
		m.DisplayBoard(os.Stdout, renderOpts...)
	case overdueCmd.FullCommand():
		tasks := m.Overdue(time.Now())
		if len(tasks) == 0 {
			fmt.Println("No overdue tasks.")
			return nil
		}
		board.NewRenderer(os.Stdout, renderOpts...).TaskSummaries("Overdue Tasks", tasks)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
	return nil
}

func runAdd(ctx context.Context, m *project.Manager) error {
	var opts []task.Option
	if *addAssignee != "" {
		opts = append(opts, task.WithAssignee(*addAssignee))
	}
	if *addDue != "" {
		due, err := task.ParseTimestamp(*addDue)
		if err != nil {
			return cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("invalid due date '%s'", *addDue), err)
		}
		opts = append(opts, task.WithDueDate(due.Time()))
	}
	t, err := m.AddTask(ctx, strings.Join(*addTitle, " "), *addDescription, opts...)
	if err != nil {
		return err
	}
	fmt.Printf("Task '%s' added with ID: %d.\n", t.Title, t.ID)
	return nil
}
