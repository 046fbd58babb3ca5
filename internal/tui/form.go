package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todolist/internal/deadline"
)

const (
	fieldTitle = iota
	fieldDeadline
	fieldCount
)

// taskForm is the two-field modal used for both add and edit.
type taskForm struct {
	heading string
	id      string // empty when adding
	inputs  [fieldCount]textinput.Model
	focus   int
	err     string
}

func newTaskForm(heading, id, title, when string) taskForm {
	f := taskForm{heading: heading, id: id}

	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = 256
	ti.Width = 40
	ti.SetValue(title)
	ti.CursorEnd()
	ti.Focus()
	f.inputs[fieldTitle] = ti

	di := textinput.New()
	di.Placeholder = deadline.Layout
	di.CharLimit = 32
	di.Width = 40
	di.SetValue(when)
	di.CursorEnd()
	f.inputs[fieldDeadline] = di

	return f
}

func (f taskForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f *taskForm) setWidth(width int) {
	if width <= 10 {
		return
	}
	for i := range f.inputs {
		f.inputs[i].Width = width - 10
	}
}

func (f taskForm) update(msg tea.KeyMsg) (taskForm, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		f.inputs[f.focus].Blur()
		f.focus = (f.focus + 1) % fieldCount
		return f, f.inputs[f.focus].Focus()
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// values returns the entered title and the deadline in deadline.Layout.
// An empty deadline is passed through for validation to reject.
func (f taskForm) values(loc *time.Location) (string, string, error) {
	title := f.inputs[fieldTitle].Value()
	when := strings.TrimSpace(f.inputs[fieldDeadline].Value())
	if when == "" {
		return title, "", nil
	}
	normalized, err := deadline.Normalize(when, loc)
	if err != nil {
		return "", "", err
	}
	return title, normalized, nil
}

func (f taskForm) view() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(f.heading))
	b.WriteString("\n\n")
	labels := [fieldCount]string{"Title", "Deadline"}
	for i, in := range f.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString(expiredStyle.Render(f.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("tab switch  enter save  esc cancel"))
	return modalStyle.Render(b.String())
}
