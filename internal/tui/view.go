package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todolist/internal/deadline"
	"todolist/internal/output"
	"todolist/internal/store"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	expiredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	modalStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
)

func (m Model) View() string {
	if m.mode == modeForm {
		return m.form.view() + "\n"
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render("Tasks"))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString("loading...\n")
	case len(m.tasks) == 0:
		b.WriteString("no tasks found\n")
	default:
		for i, task := range m.tasks {
			b.WriteString(m.row(i, task))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	return b.String()
}

func (m Model) row(i int, task store.Task) string {
	marker := "  "
	if i == m.cursor {
		marker = cursorStyle.Render("> ")
	}
	check := "[ ]"
	title := output.NormalizeTitle(task.Text)
	if task.Completed {
		check = "[x]"
		title = doneStyle.Render(title)
	}

	left := m.remaining[task.ID]
	switch left {
	case deadline.Expired:
		left = expiredStyle.Render(left)
	case deadline.Invalid:
		left = invalidStyle.Render(left)
	}

	return fmt.Sprintf("%s%s %s  (%s, %s)", marker, check, title,
		deadline.Display(task.Deadline, m.ctl.Location()), left)
}
