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
	Register(&ClearCmd{})
}

// ClearCmd implements the clear command: delete every completed task.
type ClearCmd struct{}

func (c *ClearCmd) Name() string       { return "clear" }
func (c *ClearCmd) Aliases() []string  { return []string{"clear-completed"} }
func (c *ClearCmd) Synopsis() string   { return "Delete all completed tasks" }
func (c *ClearCmd) Usage() string      { return "todos clear" }
func (c *ClearCmd) NeedsBackend() bool { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if !requireOwner(cfg, errOut) {
		return exitcode.ConfigError
	}

	st := openStore(cfg, svc)
	defer st.Close()

	if err := st.Load(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", st.Snapshot().Notice.Message)
		return exitcode.BackendError
	}

	n, err := st.ClearCompleted(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "cleared %d\n", n)
	}
	return exitcode.Success
}
