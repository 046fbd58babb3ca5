package tui

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todolist/internal/deadline"
	"todolist/internal/tasklist"
	"todolist/internal/testutil"
)

var clock = time.Date(2025, 1, 1, 9, 58, 30, 0, time.UTC)

func newModel(t *testing.T, fs *testutil.FakeStore) Model {
	t.Helper()
	ctl := tasklist.New(fs, tasklist.WithLocation(time.UTC))
	m := New(context.Background(), ctl, WithClock(func() time.Time { return clock }))
	m = drain(t, m, m.load())
	fs.ResetCalls()
	return m
}

func step(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// drain runs a store command and feeds its result back into the model.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	switch msg.(type) {
	case loadedMsg, opDoneMsg:
	default:
		t.Fatalf("unexpected message %T", msg)
	}
	m, _ = step(m, msg)
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func seeded() *testutil.FakeStore {
	fs := testutil.NewFakeStore()
	fs.AddTask("b", "Call back", "2025-01-01T10:00", false)
	fs.AddTask("a", "Submit report", "2025-01-01T09:00", false)
	return fs
}

func TestLoad_ShowsTasksInDeadlineOrder(t *testing.T) {
	m := newModel(t, seeded())

	view := m.View()
	first := strings.Index(view, "Submit report")
	second := strings.Index(view, "Call back")
	if first < 0 || second < 0 || first > second {
		t.Errorf("expected both tasks in deadline order, got:\n%s", view)
	}
	if !strings.Contains(view, "0h 1m 30s") {
		t.Errorf("expected countdown for Call back, got:\n%s", view)
	}
	if !strings.Contains(view, deadline.Expired) {
		t.Errorf("expected expired marker, got:\n%s", view)
	}
}

func TestLoad_FailureShowsStatus(t *testing.T) {
	fs := seeded()
	fs.ListErr = errors.New("unreachable")
	m := newModel(t, fs)

	if len(m.tasks) != 0 {
		t.Errorf("expected empty list, got %d tasks", len(m.tasks))
	}
	if !strings.Contains(m.status, "unreachable") {
		t.Errorf("expected status to carry the error, got %q", m.status)
	}
}

func TestTick_RecomputesRemaining(t *testing.T) {
	m := newModel(t, seeded())

	m, cmd := step(m, tickMsg(clock.Add(90*time.Second)))
	if cmd == nil {
		t.Error("expected tick to reschedule")
	}
	if got := m.remaining["b"]; got != deadline.Expired {
		t.Errorf("expected b expired, got %q", got)
	}
}

func TestAdd_ThroughForm(t *testing.T) {
	fs := testutil.NewFakeStore()
	m := newModel(t, fs)

	m, _ = step(m, runes("a"))
	if m.mode != modeForm {
		t.Fatal("expected form mode")
	}
	m, _ = step(m, runes("Buy milk"))
	m, _ = step(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = step(m, runes("2025-01-02 09:00"))
	m, cmd := step(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	if m.mode != modeList {
		t.Error("expected list mode after submit")
	}
	if len(m.tasks) != 1 || m.tasks[0].Text != "Buy milk" || m.tasks[0].Deadline != "2025-01-02T09:00" {
		t.Errorf("unexpected tasks: %+v", m.tasks)
	}
	if m.status != "added" {
		t.Errorf("expected status added, got %q", m.status)
	}
}

func TestAdd_MissingDeadline(t *testing.T) {
	fs := testutil.NewFakeStore()
	m := newModel(t, fs)

	m, _ = step(m, runes("a"))
	m, _ = step(m, runes("Buy milk"))
	m, cmd := step(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	if m.status != tasklist.ErrValidation.Error() {
		t.Errorf("expected validation status, got %q", m.status)
	}
	if calls := fs.Calls(); len(calls) != 0 {
		t.Errorf("expected no store calls, got %v", calls)
	}
}

func TestForm_CancelFailsValidation(t *testing.T) {
	fs := testutil.NewFakeStore()
	m := newModel(t, fs)

	m, _ = step(m, runes("a"))
	m, _ = step(m, runes("Buy milk"))
	m, cmd := step(m, tea.KeyMsg{Type: tea.KeyEsc})
	m = drain(t, m, cmd)

	if m.mode != modeList {
		t.Error("expected list mode after cancel")
	}
	if m.status != tasklist.ErrValidation.Error() {
		t.Errorf("expected validation status, got %q", m.status)
	}
	if calls := fs.Calls(); len(calls) != 0 {
		t.Errorf("expected no store calls, got %v", calls)
	}
}

func TestForm_InvalidDeadlineStaysOpen(t *testing.T) {
	m := newModel(t, testutil.NewFakeStore())

	m, _ = step(m, runes("a"))
	m, _ = step(m, runes("Buy milk"))
	m, _ = step(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = step(m, runes("next week"))
	m, cmd := step(m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("expected no command for an unparseable deadline")
	}
	if m.mode != modeForm || m.form.err == "" {
		t.Errorf("expected form to stay open with an error, mode=%v err=%q", m.mode, m.form.err)
	}
}

func TestEdit_Prefilled(t *testing.T) {
	fs := seeded()
	m := newModel(t, fs)

	m, _ = step(m, runes("e"))
	if got := m.form.inputs[fieldTitle].Value(); got != "Submit report" {
		t.Errorf("expected prefilled title, got %q", got)
	}
	if got := m.form.inputs[fieldDeadline].Value(); got != "2025-01-01T09:00" {
		t.Errorf("expected prefilled deadline, got %q", got)
	}

	m, _ = step(m, runes("!"))
	m, cmd := step(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	if m.tasks[0].Text != "Submit report!" {
		t.Errorf("expected edited title, got %q", m.tasks[0].Text)
	}
	want := []string{"update a text deadline"}
	if got := fs.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestToggle(t *testing.T) {
	fs := seeded()
	m := newModel(t, fs)

	m, _ = step(m, runes("j"))
	m, cmd := step(m, runes(" "))
	m = drain(t, m, cmd)

	if !m.tasks[1].Completed {
		t.Error("expected second task completed")
	}
	if !strings.Contains(m.View(), "[x] ") {
		t.Errorf("expected checked box in view:\n%s", m.View())
	}
}

func TestToggle_StoreFailureKeepsState(t *testing.T) {
	fs := seeded()
	fs.UpdateErr = errors.New("write refused")
	m := newModel(t, fs)

	m, cmd := step(m, runes("x"))
	m = drain(t, m, cmd)

	if m.tasks[0].Completed {
		t.Error("expected task to stay open after failed toggle")
	}
	if !strings.Contains(m.status, "write refused") {
		t.Errorf("expected error on status line, got %q", m.status)
	}
}

func TestDelete_ClampsCursor(t *testing.T) {
	fs := seeded()
	m := newModel(t, fs)

	m, _ = step(m, runes("j"))
	m, cmd := step(m, runes("d"))
	m = drain(t, m, cmd)

	if len(m.tasks) != 1 || m.tasks[0].ID != "a" {
		t.Errorf("expected only a to remain, got %+v", m.tasks)
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor 0, got %d", m.cursor)
	}
}

func TestKeysOnEmptyList(t *testing.T) {
	m := newModel(t, testutil.NewFakeStore())

	for _, k := range []string{"e", "x", "d"} {
		if _, cmd := step(m, runes(k)); cmd != nil {
			t.Errorf("%s: expected no command on empty list", k)
		}
	}
	if !strings.Contains(m.View(), "no tasks found") {
		t.Errorf("expected empty message, got:\n%s", m.View())
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t, testutil.NewFakeStore())

	_, cmd := step(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
