// Package tui is the interactive countdown view over a task list.
package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todolist/internal/store"
	"todolist/internal/tasklist"
)

// TickInterval is how often remaining times are recomputed.
const TickInterval = time.Second

type mode int

const (
	modeList mode = iota
	modeForm
)

type tickMsg time.Time

type loadedMsg struct{ err error }

type opDoneMsg struct {
	status string
	err    error
}

// Model is the Bubble Tea model of the view.
type Model struct {
	ctx context.Context
	ctl *tasklist.Controller
	now func() time.Time

	tasks     []store.Task
	remaining map[string]string
	cursor    int
	loaded    bool

	mode   mode
	form   taskForm
	status string
	width  int
}

// Option configures a Model.
type Option func(*Model)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// New creates a Model over ctl. Store calls made by the view use ctx.
func New(ctx context.Context, ctl *tasklist.Controller, opts ...Option) Model {
	m := Model{
		ctx:    ctx,
		ctl:    ctl,
		now:    time.Now,
		status: "a add  e edit  space toggle  d delete  r reload  q quit",
		mode:   modeList,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the view and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, ctl *tasklist.Controller, in io.Reader, out io.Writer) error {
	program := tea.NewProgram(New(ctx, ctl),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.form.setWidth(msg.Width)
	case tickMsg:
		m.remaining = m.ctl.Remaining(time.Time(msg))
		return m, tick()
	case loadedMsg:
		m.loaded = true
		m.refresh()
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
		}
	case opDoneMsg:
		m.refresh()
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = msg.status
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "r":
		m.status = "loading..."
		return m, m.load()
	case "a":
		m.mode = modeForm
		m.form = newTaskForm("Add task", "", "", "")
		m.form.setWidth(m.width)
		return m, m.form.focusCmd()
	case "e":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeForm
		m.form = newTaskForm("Edit task", task.ID, task.Text, task.Deadline)
		m.form.setWidth(m.width)
		return m, m.form.focusCmd()
	case " ", "x":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.toggle(task.ID)
	case "d":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.remove(task.ID)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		// A cancelled form submits nothing and fails validation.
		m.mode = modeList
		return m, m.submit(m.form.id, "", "")
	case "enter":
		title, when, err := m.form.values(m.ctl.Location())
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.mode = modeList
		return m, m.submit(m.form.id, title, when)
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// refresh copies the controller's list and recomputes remaining times.
func (m *Model) refresh() {
	m.tasks = m.ctl.Tasks()
	m.remaining = m.ctl.Remaining(m.now())
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (store.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return store.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m Model) load() tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg {
		return loadedMsg{err: ctl.Load(ctx)}
	}
}

// submit adds when id is empty and edits otherwise.
func (m Model) submit(id, title, when string) tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg {
		if id == "" {
			_, err := ctl.Add(ctx, title, when)
			return opDoneMsg{status: "added", err: err}
		}
		_, err := ctl.Edit(ctx, id, title, when)
		return opDoneMsg{status: "saved", err: err}
	}
}

func (m Model) toggle(id string) tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg {
		_, err := ctl.Toggle(ctx, id)
		return opDoneMsg{status: "toggled", err: err}
	}
}

func (m Model) remove(id string) tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg {
		return opDoneMsg{status: "deleted", err: ctl.Delete(ctx, id)}
	}
}
