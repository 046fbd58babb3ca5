// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"todolist/internal/deadline"
	"todolist/internal/store"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {TITLE}  ({DEADLINE}, {REMAINING})\n"
func FormatTask(w io.Writer, num int, task store.Task, remaining string, loc *time.Location) {
	fmt.Fprintf(w, "%4d  [%s] %s  (%s, %s)\n",
		num, checkbox(task.Completed), NormalizeTitle(task.Text), deadline.Display(task.Deadline, loc), remaining)
}

// FormatTasks formats every task, numbered from 1, using the countdowns in
// remaining.
func FormatTasks(w io.Writer, tasks []store.Task, remaining map[string]string, loc *time.Location) {
	for i, task := range tasks {
		FormatTask(w, i+1, task, remaining[task.ID], loc)
	}
}

func checkbox(completed bool) string {
	if completed {
		return "x"
	}
	return " "
}

// NormalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
