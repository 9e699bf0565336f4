package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/simonhull/mpegmeta/internal/binary"
	"github.com/simonhull/mpegmeta/internal/id3"
	"github.com/simonhull/mpegmeta/internal/mpeg"
	"github.com/simonhull/mpegmeta/internal/source"
)

var errInvalidArgCount = errors.New("expected exactly one argument: file path")

func framesCommand() *cli.Command {
	return &cli.Command{
		Name:      "frames",
		Usage:     "List every frame header of a file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "stop after this many frames (0 lists all)",
			},
		},
		Action: runFrames,
	}
}

func runFrames(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
	}

	path := cmd.Args().First()

	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified audio files
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	src := source.FromReaderAt(binary.NewSafeReader(file, stat.Size(), path), 0)
	if _, err := id3.SkipV2(src); err != nil && !source.IsEndOfStream(err) {
		return fmt.Errorf("skipping ID3v2 tag: %w", err)
	}

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tOFFSET\tSIZE\tCODEC\tRATE\tBITRATE\tCHANNELS\tCRC")

	limit := cmd.Int("limit")
	n := 0
	err = mpeg.Walk(ctx, src, func(f mpeg.Frame) error {
		n++
		writeFrame(tw, n, f)
		if limit > 0 && n >= int(limit) {
			return mpeg.ErrStopWalk
		}
		return nil
	})
	if flushErr := tw.Flush(); err == nil {
		err = flushErr
	}
	return err
}

func writeFrame(w io.Writer, n int, f mpeg.Frame) {
	var bitrate string
	var channels int
	switch h := f.Header.(type) {
	case *mpeg.MPEGHeader:
		bitrate = fmt.Sprintf("%d", h.Bitrate/1000)
		channels = h.Channels()
	case *mpeg.ADTSHeader:
		bitrate = "-"
		channels = h.Channels()
	}

	_, _ = fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%d\t%s\t%d\t%t\n",
		n, f.Offset, f.Size, f.Header.Codec(), f.Header.SamplingRate(), bitrate, channels, f.Header.CRCProtected())
}
