package main

import (
	"os"

	"git.home.luguber.info/inful/pibary/cmd/pibary/commands"
	"git.home.luguber.info/inful/pibary/internal/errors"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cli := &commands.CLI{}
	global := &commands.Global{}
	parser, err := commands.NewParser(cli, global)
	if err != nil {
		return errors.NewCLIErrorAdapter(false, nil).Report(err)
	}
	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	if err := ctx.Run(cli); err != nil {
		return errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).Report(err)
	}
	return 0
}
