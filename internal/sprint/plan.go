package sprint

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/kazz187/agileboard/internal/task"
	"github.com/kazz187/agileboard/pkg/cerr"
)

// Plan is a sprint described in TOML:
//
//	name  = "Sprint 1"
//	start = 2025-07-08
//	end   = 2025-07-22
//
//	[[tasks]]
//	title       = "Setup CI/CD"
//	description = "Configure Jenkins and Docker"
//	assignee    = "Alice"
//	due         = 2025-07-15
//	status      = "In Progress"
type Plan struct {
	Name  string     `toml:"name"`
	Start time.Time  `toml:"start"`
	End   time.Time  `toml:"end"`
	Tasks []PlanTask `toml:"tasks"`
}

type PlanTask struct {
	Title       string     `toml:"title"`
	Description string     `toml:"description"`
	Assignee    string     `toml:"assignee"`
	Due         *time.Time `toml:"due"`
	Status      string     `toml:"status"`
}

// LoadPlan decodes the TOML plan at path. Keys the plan does not know are
// rejected.
func LoadPlan(path string) (*Plan, error) {
	var p Plan
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return nil, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("could not read sprint plan %s", path), err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return &p, nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("unknown keys in sprint plan: %s", strings.Join(keys, ", ")), nil)
}

// Build creates the sprint and its tasks. now stamps the tasks' creation
// time; nil means time.Now.
func (p *Plan) Build(now func() time.Time) (*Sprint, error) {
	if p.Name == "" {
		return nil, cerr.NewError(cerr.InvalidArgument, "sprint plan has no name", nil)
	}
	if now == nil {
		now = time.Now
	}
	s := New(p.Name, p.Start, p.End)
	for i, pt := range p.Tasks {
		opts := []task.Option{task.WithClock(now)}
		if pt.Assignee != "" {
			opts = append(opts, task.WithAssignee(pt.Assignee))
		}
		if pt.Due != nil {
			opts = append(opts, task.WithDueDate(*pt.Due))
		}
		t := task.New(pt.Title, pt.Description, opts...)
		if pt.Status != "" {
			if err := t.UpdateStatus(pt.Status); err != nil {
				return nil, fmt.Errorf("task %d (%s): %w", i+1, pt.Title, err)
			}
		}
		s.AddTask(t)
	}
	return s, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// ExamplePlan is the sprint used when no plan file is given.
func ExamplePlan() *Plan {
	ciDue := date(2025, time.July, 15)
	schemaDue := date(2025, time.July, 10)
	return &Plan{
		Name:  "Sprint 1",
		Start: date(2025, time.July, 8),
		End:   date(2025, time.July, 22),
		Tasks: []PlanTask{
			{Title: "Setup CI/CD", Description: "Configure Jenkins and Docker", Assignee: "Alice", Due: &ciDue, Status: string(task.StatusInProgress)},
			{Title: "Database Schema", Description: "Design initial DB schema", Assignee: "Bob", Due: &schemaDue, Status: string(task.StatusDone)},
			{Title: "Login Page", Description: "Develop frontend login", Assignee: "Carol"},
		},
	}
}
