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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	due         string
	interactive bool
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string {
	return "todolist add [common flags] [--due <YYYY-MM-DDTHH:MM>] [-i] <title...>"
}
func (c *AddCmd) NeedsStore() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.due, "due", "", "Deadline (YYYY-MM-DDTHH:MM)")
	fs.BoolVar(&c.interactive, "i", false, "Prompt for the fields")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, s Streams) int {
	ctl, code := newController(cfg, st, s.Err)
	if code != exitcode.Success {
		return code
	}

	title := strings.Join(args, " ")
	due := c.due
	if due != "" {
		normalized, err := deadline.Normalize(due, ctl.Location())
		if err != nil {
			fmt.Fprintf(s.Err, "error: %v\n", err)
			return exitcode.UserError
		}
		due = normalized
	}

	if c.interactive {
		v, answered, err := form.NewLine(s.In, s.Err, ctl.Location()).Ask(ctx, form.Request{
			Heading: "Add task",
			Initial: form.Values{Title: title, Deadline: due},
		})
		if err != nil {
			fmt.Fprintf(s.Err, "error: %v\n", err)
			return exitcode.UserError
		}
		// A cancelled form carries no values and fails validation below.
		if !answered {
			v = form.Values{}
		}
		title, due = v.Title, v.Deadline
	}

	if _, err := ctl.Add(ctx, title, due); err != nil {
		return reportError(s.Err, err)
	}
	return ok(cfg, s.Out)
}
