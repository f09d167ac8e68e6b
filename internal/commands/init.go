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
	Register(&InitCmd{})
}

// InitCmd writes the effective settings (file, env and flags merged) to
// config.toml so later runs need no flags.
type InitCmd struct{}

func (c *InitCmd) Name() string       { return "init" }
func (c *InitCmd) Aliases() []string  { return nil }
func (c *InitCmd) Synopsis() string   { return "Save settings to the config file" }
func (c *InitCmd) Usage() string      { return "todos init --user-id <n> [--api-url <url>]" }
func (c *InitCmd) NeedsBackend() bool { return false }

func (c *InitCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *InitCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !requireOwner(cfg, errOut) {
		return exitcode.ConfigError
	}
	verb := "wrote"
	if cfg.HasConfigFile() {
		verb = "updated"
	}
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "%s %s\n", verb, cfg.FilePath())
	}
	return exitcode.Success
}
