package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/output"
	"todos/internal/service"
	"todos/internal/state"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todos` (no args) and `todos list --filter <f>`.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter name (for testing).
func (c *ListCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "todos list [--filter all|active|completed]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	filter, err := state.ParseFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !requireOwner(cfg, errOut) {
		return exitcode.ConfigError
	}

	st := openStore(cfg, svc)
	defer st.Close()

	st.SetFilter(filter)
	if err := st.Load(ctx); err != nil {
		cfg.Log().Debug("list failed", "err", err)
		fmt.Fprintf(errOut, "error: %s\n", st.Snapshot().Notice.Message)
		return exitcode.BackendError
	}

	snap := st.Snapshot()
	if len(snap.Tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	output.FormatList(out, snap)
	return exitcode.Success
}
