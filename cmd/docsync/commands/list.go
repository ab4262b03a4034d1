package commands

import (
	"encoding/json"
	"fmt"

	"github.com/thatguysimon/docs.pact.io/internal/config"
	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
	"github.com/thatguysimon/docs.pact.io/internal/sync"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	Job  []string `short:"j" help:"Only list the named job (repeatable)"`
	JSON bool     `name:"json" help:"Print JSON instead of text"`
}

func (l *ListCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	source, err := openSource(cfg)
	if err != nil {
		return err
	}

	planned, err := sync.NewRunner(cfg, source, sync.NewFSWriter(cfg.Destination.Root), sync.WithJobs(l.Job...)).
		Plan(g.context())
	if err != nil {
		return err
	}
	return printPlan(g, planned, l.JSON)
}

func printPlan(g *Global, planned []sync.PlannedFile, asJSON bool) error {
	out := g.out()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(planned); err != nil {
			return errors.InternalError("failed to encode file list").WithCause(err).Build()
		}
		return nil
	}
	for _, p := range planned {
		_, _ = fmt.Fprintf(out, "%s\t%s -> %s\n", p.Job, p.Path, p.Destination)
	}
	return nil
}
