package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"todolist/internal/config"
	"todolist/internal/deadline"
	"todolist/internal/exitcode"
	"todolist/internal/form"
	"todolist/internal/store"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct {
	title       optionalString
	due         optionalString
	interactive bool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task's title or deadline" }
func (c *EditCmd) Usage() string {
	return "todolist edit [common flags] [--title <title>] [--due <YYYY-MM-DDTHH:MM>] [-i] <n> [title...]"
}
func (c *EditCmd) NeedsStore() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title = optionalString{}
	c.due = optionalString{}
	fs.Var(&c.title, "title", "New title")
	fs.Var(&c.due, "due", "New deadline (YYYY-MM-DDTHH:MM)")
	fs.BoolVar(&c.interactive, "i", false, "Prompt for the fields, prefilled")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, s Streams) int {
	target, code := resolveTask(ctx, cfg, st, args, s)
	if code != exitcode.Success {
		return code
	}
	ctl, task := target.ctl, target.task

	title, due := task.Text, task.Deadline
	if rest := args[1:]; len(rest) > 0 {
		title = strings.Join(rest, " ")
	}
	if c.title.set {
		title = c.title.value
	}
	if c.due.set {
		due = c.due.value
		if due != "" {
			normalized, err := deadline.Normalize(due, ctl.Location())
			if err != nil {
				fmt.Fprintf(s.Err, "error: %v\n", err)
				return exitcode.UserError
			}
			due = normalized
		}
	}

	if c.interactive {
		v, answered, err := form.NewLine(s.In, s.Err, ctl.Location()).Ask(ctx, form.Request{
			Heading: "Edit task",
			Initial: form.Values{Title: title, Deadline: due},
		})
		if err != nil {
			fmt.Fprintf(s.Err, "error: %v\n", err)
			return exitcode.UserError
		}
		if !answered {
			v = form.Values{}
		}
		title, due = v.Title, v.Deadline
	}

	if _, err := ctl.Edit(ctx, task.ID, title, due); err != nil {
		return reportError(s.Err, err)
	}
	return ok(cfg, s.Out)
}
