package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Notifuse/canvas/config"
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "blockctl: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command tree around the given streams
func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	flags := &Flags{}
	s := &streams{in: stdin, out: stdout, err: stderr}

	app := &cli.Command{
		Name:      "blockctl",
		Usage:     "Inspect, validate and render email block documents",
		UsageText: "blockctl [global options] command [command options]",
		Description: `blockctl works on serialized block documents offline, without the API server.

Documents are read from a file path, or from stdin when the path is "-".`,
		Version:   config.VERSION,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("BLOCKCTL_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
		},
	}

	NewPaletteCmd(flags, s).Register(app)
	NewTemplatesCmd(flags, s).Register(app)
	NewSeedCmd(flags, s).Register(app)
	NewValidateCmd(flags, s).Register(app)
	NewRenderCmd(flags, s).Register(app)

	return app
}
