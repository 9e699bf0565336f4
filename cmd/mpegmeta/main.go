// Package main provides the mpegmeta CLI for inspecting MPEG audio and
// ADTS streams.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/simonhull/mpegmeta"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := mpegmeta.GetVersionInfo()
	appl := &cli.Command{
		Name:    "mpegmeta",
		Usage:   "Read MPEG audio and ADTS stream parameters",
		Version: info.Version + " (" + info.GitCommit + " - " + info.BuildTime + ")",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log frame parser decisions to stderr",
			},
		},
		Commands: []*cli.Command{
			probeCommand(),
			framesCommand(),
			serveCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)

		stop()
		os.Exit(1)
	}
}
