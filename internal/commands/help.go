package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todos help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todos                                         List all tasks
  todos list [common flags] [--filter <f>]      List tasks (all, active, completed)
  todos add [common flags] <title...>
  todos create [common flags] <title...>
  todos rm [common flags] <id>
  todos delete [common flags] <id>
  todos clear [common flags]                    Delete all completed tasks
  todos tui [common flags]                      Interactive mode
  todos init [common flags]                     Save settings to the config file
  todos help
  todos version

Common flags:
  --config <dir>    Override config directory
  --api-url <url>   Override the backend base URL
  --user-id <n>     Override the task owner
  --quiet           Suppress informational output
  --debug           Print debug logs to stderr
`
