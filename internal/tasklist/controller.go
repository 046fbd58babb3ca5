// Package tasklist owns the in-memory task list and the operations that
// change it.
//
// The Controller loads the collection once, sorted by deadline, and from then
// on its copy is canonical: the store is only written to. Every mutating
// operation is remote-first. The local list changes only after the store
// call returns without error, so a failed call leaves the held list exactly
// as it was.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"todolist/internal/deadline"
	"todolist/internal/store"
)

// ErrValidation is returned when a title or deadline is missing.
var ErrValidation = errors.New("all fields are required")

// Controller holds the task list and serializes access to it.
//
// opMu is held across each whole operation (read, store call, apply), so
// mutations run one at a time. mu guards only the slice and is never held
// during a store call, so Tasks and Remaining do not wait on I/O.
type Controller struct {
	st  store.Store
	loc *time.Location
	log *slog.Logger

	opMu sync.Mutex

	mu    sync.Mutex
	tasks []store.Task
}

// Option configures a Controller.
type Option func(*Controller)

// WithLocation sets the zone naive deadlines are read in. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithLogger sets the controller's logger. Defaults to discarding.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Controller over st with an empty list.
func New(st store.Store, opts ...Option) *Controller {
	c := &Controller{
		st:  st,
		loc: time.Local,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks the fields collected for add and edit.
func Validate(text, deadline string) error {
	if strings.TrimSpace(text) == "" || deadline == "" {
		return ErrValidation
	}
	return nil
}

// Load fetches every task, sorts by deadline and replaces the held list.
// On error the held list is left empty.
func (c *Controller) Load(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	tasks, err := c.st.List(ctx)
	if err != nil {
		c.mu.Lock()
		c.tasks = nil
		c.mu.Unlock()
		c.log.Debug("load failed", "err", err)
		return fmt.Errorf("load tasks: %w", err)
	}

	SortByDeadline(tasks, c.loc)

	c.mu.Lock()
	c.tasks = tasks
	c.mu.Unlock()
	c.log.Debug("loaded tasks", "count", len(tasks))
	return nil
}

// Tasks returns a copy of the held list in order.
func (c *Controller) Tasks() []store.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.tasks)
}

// Task returns the held task with the given id.
func (c *Controller) Task(id string) (store.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return store.Task{}, false
	}
	return c.tasks[i], true
}

// Location returns the zone naive deadlines are read in.
func (c *Controller) Location() *time.Location {
	return c.loc
}

// Remaining computes the countdown strings for the held list at now.
func (c *Controller) Remaining(now time.Time) map[string]string {
	return Remaining(c.Tasks(), now, c.loc)
}

// Add creates a task and appends it to the held list. The list is not
// re-sorted.
func (c *Controller) Add(ctx context.Context, text, dl string) (store.Task, error) {
	if err := Validate(text, dl); err != nil {
		c.log.Debug("add rejected", "err", err)
		return store.Task{}, err
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	rec := store.Record{Text: text, Completed: false, Deadline: dl}
	id, err := c.st.Create(ctx, rec)
	if err != nil {
		c.log.Debug("create failed", "err", err)
		return store.Task{}, fmt.Errorf("create task: %w", err)
	}

	task := store.Task{ID: id, Text: rec.Text, Completed: rec.Completed, Deadline: rec.Deadline}
	c.mu.Lock()
	c.tasks = append(c.tasks, task)
	c.mu.Unlock()
	c.log.Debug("task added", "id", id)
	return task, nil
}

// Edit writes a new title and deadline for id and replaces the held entry.
// Completed is not touched and the list is not re-sorted.
func (c *Controller) Edit(ctx context.Context, id, text, dl string) (store.Task, error) {
	if err := Validate(text, dl); err != nil {
		c.log.Debug("edit rejected", "id", id, "err", err)
		return store.Task{}, err
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()
	if _, ok := c.Task(id); !ok {
		return store.Task{}, notHeld(id)
	}

	patch := store.Patch{Text: &text, Deadline: &dl}
	if err := c.st.Update(ctx, id, patch); err != nil {
		c.log.Debug("update failed", "id", id, "err", err)
		return store.Task{}, fmt.Errorf("update task: %w", err)
	}

	return c.apply(id, patch)
}

// Toggle flips Completed for id.
func (c *Controller) Toggle(ctx context.Context, id string) (store.Task, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	task, ok := c.Task(id)
	if !ok {
		return store.Task{}, notHeld(id)
	}

	next := !task.Completed
	patch := store.Patch{Completed: &next}
	if err := c.st.Update(ctx, id, patch); err != nil {
		c.log.Debug("update failed", "id", id, "err", err)
		return store.Task{}, fmt.Errorf("update task: %w", err)
	}

	return c.apply(id, patch)
}

// Delete removes id from the store and then from the held list.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if _, ok := c.Task(id); !ok {
		return notHeld(id)
	}

	if err := c.st.Delete(ctx, id); err != nil {
		c.log.Debug("delete failed", "id", id, "err", err)
		return fmt.Errorf("delete task: %w", err)
	}

	c.mu.Lock()
	if i := c.index(id); i >= 0 {
		c.tasks = slices.Delete(c.tasks, i, i+1)
	}
	c.mu.Unlock()
	c.log.Debug("task deleted", "id", id)
	return nil
}

// apply writes p over the held entry for id. Must be called with opMu held.
func (c *Controller) apply(id string, p store.Patch) (store.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return store.Task{}, notHeld(id)
	}
	c.tasks[i] = p.Apply(c.tasks[i])
	return c.tasks[i], nil
}

// index must be called with mu held.
func (c *Controller) index(id string) int {
	return slices.IndexFunc(c.tasks, func(t store.Task) bool { return t.ID == id })
}

func notHeld(id string) error {
	return fmt.Errorf("task %s: %w", id, store.ErrNotFound)
}

// Remaining maps each task id to its countdown string at now.
func Remaining(tasks []store.Task, now time.Time, loc *time.Location) map[string]string {
	out := make(map[string]string, len(tasks))
	for _, t := range tasks {
		out[t.ID] = deadline.RemainingString(t.Deadline, now, loc)
	}
	return out
}

// SortByDeadline orders tasks by deadline ascending, in place. The sort is
// stable; tasks whose deadline does not parse keep their relative order
// after all others.
func SortByDeadline(tasks []store.Task, loc *time.Location) {
	type keyed struct {
		at   time.Time
		ok   bool
		task store.Task
	}
	keys := make([]keyed, len(tasks))
	for i, t := range tasks {
		at, err := deadline.Parse(t.Deadline, loc)
		keys[i] = keyed{at: at, ok: err == nil, task: t}
	}

	slices.SortStableFunc(keys, func(a, b keyed) int {
		switch {
		case a.ok && b.ok:
			return a.at.Compare(b.at)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return 0
		}
	})

	for i, k := range keys {
		tasks[i] = k.task
	}
}
