package commands

import (
	"fmt"

	"github.com/thatguysimon/docs.pact.io/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	out := g.out()
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, "Edit the jobs section, then run 'docsync list' to preview the selection.")
	return nil
}
