package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/thatguysimon/docs.pact.io/cmd/docsync/commands"
	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("docsync"),
		kong.Description("Mirror markdown documentation from a source repository into a docs tree."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Bind(cli, &commands.Global{Ctx: ctx, Out: os.Stdout}),
	)

	err := parser.Run()
	cancel()
	if code := errors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err); code != 0 {
		os.Exit(code)
	}
}
