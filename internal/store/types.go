package store

// Task is a single task as held in memory.
type Task struct {
	ID        string
	Text      string
	Completed bool
	Deadline  string // local date-time, "2006-01-02T15:04"
}

// Record is the wire body of a task, without its id.
type Record struct {
	Text      string
	Completed bool
	Deadline  string
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Text      *string
	Completed *bool
	Deadline  *string
}

// Empty reports whether the patch sets no field.
func (p Patch) Empty() bool {
	return p.Text == nil && p.Completed == nil && p.Deadline == nil
}

// Apply returns t with the patch's fields written over it.
func (p Patch) Apply(t Task) Task {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Deadline != nil {
		t.Deadline = *p.Deadline
	}
	return t
}

// Fields returns the wire field names the patch sets, in a fixed order.
func (p Patch) Fields() []string {
	var fields []string
	if p.Text != nil {
		fields = append(fields, "text")
	}
	if p.Completed != nil {
		fields = append(fields, "completed")
	}
	if p.Deadline != nil {
		fields = append(fields, "deadline")
	}
	return fields
}
