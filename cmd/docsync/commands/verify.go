package commands

import (
	"fmt"
	"path/filepath"

	"github.com/thatguysimon/docs.pact.io/internal/config"
	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
	"github.com/thatguysimon/docs.pact.io/internal/markdown"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Dirs []string `arg:"" optional:"" help:"Directories below the destination root to check (default: whole root)"`
}

func (v *VerifyCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	return runVerify(g, cfg.Destination.Root, v.Dirs)
}

func runVerify(g *Global, destRoot string, dirs []string) error {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	var files []string
	for _, dir := range dirs {
		found, err := markdown.MarkdownFiles(destRoot, filepath.ToSlash(dir))
		if err != nil {
			return err
		}
		files = append(files, found...)
	}

	broken, err := markdown.Verify(destRoot, files)
	if err != nil {
		return err
	}
	out := g.out()
	for _, b := range broken {
		_, _ = fmt.Fprintf(out, "%s: broken %s link %q\n", b.File, b.Kind, b.Target)
	}
	_, _ = fmt.Fprintf(out, "%d files checked, %d broken links\n", len(files), len(broken))

	if len(broken) > 0 {
		return errors.DocsError("broken links found").
			WithContext("count", len(broken)).
			Build()
	}
	return nil
}
