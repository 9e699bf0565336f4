package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/simonhull/mpegmeta"
	"github.com/simonhull/mpegmeta/internal/server"
)

var errNoFiles = errors.New("expected at least one file")

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     "Print the audio parameters of one or more files (- reads stdin)",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "duration",
				Aliases: []string{"d"},
				Usage:   "count frames to the end of the stream when nothing cheaper gives a duration",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print one JSON object per file",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "fail on the first warning",
			},
		},
		Action: runProbe,
	}
}

func runProbe(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errNoFiles
	}

	opts := []mpegmeta.Option{mpegmeta.WithLogger(newLogger(cmd))}
	if cmd.Bool("duration") {
		opts = append(opts, mpegmeta.WithDuration())
	}
	if cmd.Bool("strict") {
		opts = append(opts, mpegmeta.WithStrictParsing())
	}

	var files []*mpegmeta.File
	if len(paths) == 1 && paths[0] == "-" {
		file, err := mpegmeta.Parse(ctx, os.Stdin, opts...)
		if err != nil {
			return fmt.Errorf("stdin: %w", err)
		}
		files = []*mpegmeta.File{file}
	} else {
		var err error
		files, err = mpegmeta.OpenManyWith(ctx, paths, opts...)
		if err != nil {
			return err
		}
	}
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}

	for _, f := range files {
		if cmd.Bool("json") {
			if err := json.NewEncoder(out).Encode(server.NewReport(f)); err != nil {
				return fmt.Errorf("encoding %s: %w", f.Path, err)
			}
			continue
		}
		printFile(out, f)
	}

	return nil
}

func printFile(w io.Writer, f *mpegmeta.File) {
	a := f.Audio

	_, _ = fmt.Fprintf(w, "%s\n", f.Path)
	_, _ = fmt.Fprintf(w, "  Format:      %s\n", f.Format)
	_, _ = fmt.Fprintf(w, "  Container:   %s\n", a.Container)
	_, _ = fmt.Fprintf(w, "  Codec:       %s\n", a.FullCodecName())
	_, _ = fmt.Fprintf(w, "  Sample rate: %d Hz\n", a.SampleRate)
	_, _ = fmt.Fprintf(w, "  Channels:    %d\n", a.Channels)
	_, _ = fmt.Fprintf(w, "  Bitrate:     %d kbps\n", a.Bitrate/1000)
	if a.Duration > 0 {
		_, _ = fmt.Fprintf(w, "  Duration:    %s\n", a.Duration.Round(time.Millisecond))
	}
	if a.NumberOfSamples > 0 {
		_, _ = fmt.Fprintf(w, "  Samples:     %d\n", a.NumberOfSamples)
	}
	if a.Tool != "" {
		_, _ = fmt.Fprintf(w, "  Encoder:     %s\n", a.Tool)
	}
	for _, warn := range f.Warnings {
		_, _ = fmt.Fprintf(w, "  Warning:     %s\n", warn)
	}
}
