// Package launcher wires the collator-spec command line: configuration,
// logging and the build-spec, check-spec, export-genesis-state and
// seed-storage commands.
package launcher

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-collator-spec/flags"
)

var app = newApp()

func newApp() *cli.App {
	app := flags.NewApp()
	app.Commands = []cli.Command{
		buildSpecCommand,
		checkSpecCommand,
		exportGenesisStateCommand,
		seedStorageCommand,
	}
	return app
}

// Launch runs the command line described by args (args[0] is the program
// name).
func Launch(args []string) error {
	return app.Run(args)
}
