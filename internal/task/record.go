package task

// Record is the flat, persisted form of a Task. Field order is the order
// written to disk.
type Record struct {
	ID          int64   `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Status      string  `json:"status" yaml:"status"`
	CreatedAt   string  `json:"created_at" yaml:"created_at"`
	Assignee    string  `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	DueDate     *string `json:"due_date,omitempty" yaml:"due_date,omitempty"`
}

// Document is the whole backing file.
type Document struct {
	Tasks []Record `json:"tasks" yaml:"tasks"`
}

func (t *Task) ToRecord() Record {
	r := Record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.status),
		CreatedAt:   t.createdAt.String(),
		Assignee:    t.assignee,
	}
	if t.dueDate != nil {
		due := t.dueDate.String()
		r.DueDate = &due
	}
	return r
}

// FromRecord rebuilds a task. The record's status must already be valid;
// repositories validate documents before decoding them.
func FromRecord(r Record) *Task {
	t := &Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		assignee:    r.Assignee,
		status:      Status(r.Status),
		createdAt:   TimestampFromText(r.CreatedAt),
	}
	if r.DueDate != nil {
		due := TimestampFromText(*r.DueDate)
		t.dueDate = &due
	}
	return t
}

func NewDocument(tasks []*Task) Document {
	doc := Document{Tasks: make([]Record, 0, len(tasks))}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, t.ToRecord())
	}
	return doc
}

func (d Document) Decode() []*Task {
	tasks := make([]*Task, 0, len(d.Tasks))
	for _, r := range d.Tasks {
		tasks = append(tasks, FromRecord(r))
	}
	return tasks
}
