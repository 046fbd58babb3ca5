package commands

import (
	"context"
	"flag"
	"fmt"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/store"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todolist help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, s Streams) int {
	fmt.Fprint(s.Out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todolist                                   List tasks by deadline
  todolist list [common flags]
  todolist add [common flags] [--due <when>] [-i] <title...>
  todolist create [common flags] [--due <when>] [-i] <title...>
  todolist edit [common flags] [--title <title>] [--due <when>] [-i] <n> [title...]
  todolist toggle [common flags] <n>
  todolist done [common flags] <n>
  todolist rm [common flags] <n>
  todolist delete [common flags] <n>
  todolist watch [common flags]              Live countdown view
  todolist login [common flags]
  todolist logout [common flags]
  todolist help
  todolist version

<n> is the task number shown by list. <when> is YYYY-MM-DDTHH:MM.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
