// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"todolist/internal/store"
)

// FakeStore is an in-memory implementation of store.Store for testing.
// Tasks are kept in insertion order; ids are "task-1", "task-2", ...
type FakeStore struct {
	mu     sync.RWMutex
	tasks  []store.Task
	nextID int
	calls  []string

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// AddTask seeds a task without recording a call.
func (f *FakeStore) AddTask(id, text, deadline string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, store.Task{ID: id, Text: text, Completed: completed, Deadline: deadline})
}

// Snapshot returns the stored tasks in insertion order.
func (f *FakeStore) Snapshot() []store.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.tasks)
}

// Get returns the stored task with the given id.
func (f *FakeStore) Get(id string) (store.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return store.Task{}, false
}

// Calls returns the recorded calls, e.g. "create", "update task-1 completed".
func (f *FakeStore) Calls() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.calls)
}

// ResetCalls clears the call log.
func (f *FakeStore) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// List implements store.Store.
func (f *FakeStore) List(ctx context.Context) ([]store.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "list")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return slices.Clone(f.tasks), nil
}

// Create implements store.Store.
func (f *FakeStore) Create(ctx context.Context, rec store.Record) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create")
	if f.CreateErr != nil {
		return "", f.CreateErr
	}

	f.nextID++
	id := fmt.Sprintf("task-%d", f.nextID)
	f.tasks = append(f.tasks, store.Task{ID: id, Text: rec.Text, Completed: rec.Completed, Deadline: rec.Deadline})
	return id, nil
}

// Update implements store.Store.
func (f *FakeStore) Update(ctx context.Context, id string, p store.Patch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := "update " + id
	for _, field := range p.Fields() {
		call += " " + field
	}
	f.calls = append(f.calls, call)
	if f.UpdateErr != nil {
		return f.UpdateErr
	}

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i] = p.Apply(t)
			return nil
		}
	}
	return store.ErrNotFound
}

// Delete implements store.Store.
func (f *FakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "delete "+id)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = slices.Delete(f.tasks, i, i+1)
			return nil
		}
	}
	return store.ErrNotFound
}
