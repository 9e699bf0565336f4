package mpegmeta

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/mpegmeta/internal/binary"
	"github.com/simonhull/mpegmeta/internal/id3"
	_ "github.com/simonhull/mpegmeta/internal/mpeg" // registers the MPEG and ADTS parsers
	"github.com/simonhull/mpegmeta/internal/registry"
	"github.com/simonhull/mpegmeta/internal/source"
	"github.com/simonhull/mpegmeta/internal/types"
)

// streamPath names one-pass inputs in errors and warnings.
const streamPath = "<stream>"

// File is an alias to types.File.
// Re-exporting from internal/types to maintain public API.
type File = types.File

// Open opens an MPEG audio or ADTS file and reads its audio parameters.
//
// Open reads frame headers only. How far it reads depends on the stream:
// a Xing/Info tag or a constant bitrate settles the duration after three
// frames; anything else needs WithDuration and a walk to the last frame.
//
// If the stream is corrupted, Open may return a partial File with
// warnings instead of an error. Check File.Warnings for details.
//
// Options can be provided to customize parsing behavior:
//
//	file, err := mpegmeta.Open("song.mp3",
//	    mpegmeta.WithDuration(),
//	    mpegmeta.WithStrictParsing(),
//	)
//
// Example:
//
//	file, err := mpegmeta.Open("song.mp3")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
//	fmt.Println(file.Audio)
func Open(path string, opts ...Option) (*File, error) {
	return OpenContext(context.Background(), path, opts...)
}

// OpenContext is Open with cancellation. The context is checked between
// frames, so it can cut short a walk started by WithDuration.
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	file, err := mpegmeta.OpenContext(ctx, "podcast.mp3", mpegmeta.WithDuration())
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	file, err := openReader(ctx, f, stat.Size(), path, options)
	if err != nil {
		f.Close()
		return nil, err
	}

	file.Reader_ = f

	if err := options.check(file); err != nil {
		f.Close()
		return nil, err
	}

	return file, nil
}

// openReader parses from an io.ReaderAt (internal, for testing).
func openReader(ctx context.Context, r io.ReaderAt, size int64, path string, options *openOptions) (*File, error) {
	format, err := DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}

	parser := registry.Get(format)
	if parser == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no parser available for format %s", format),
		}
	}

	sr := binary.NewSafeReader(r, size, path)
	src := source.FromReaderAt(sr, 0)

	file := &File{
		Path:     path,
		Format:   format,
		Size:     size,
		HasID3v1: id3.HasV1(sr),
	}

	if err := parseStream(ctx, parser, src, file, options); err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}

	return file, nil
}

// Parse reads audio parameters from a one-pass stream such as an HTTP
// request body. The stream size is unknown unless given with
// WithStreamSize, which limits the duration strategies available.
//
// The returned File has no handle to close.
func Parse(ctx context.Context, r io.Reader, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	file := &File{
		Path: streamPath,
		Size: options.streamSize,
	}

	src := source.FromReader(r, options.streamSize)
	if err := parseStream(ctx, registry.Get(FormatMPEG), src, file, options); err != nil {
		return nil, fmt.Errorf("parse stream: %w", err)
	}

	if file.Audio.Codec == "" {
		return nil, &UnsupportedFormatError{
			Path:   streamPath,
			Reason: "no MPEG audio or ADTS frame found",
		}
	}

	// Without a ReaderAt there was no detection pass; the frames decide.
	file.Format = FormatMPEG
	if file.Audio.Codec == "AAC" {
		file.Format = FormatADTS
	}

	if err := options.check(file); err != nil {
		return nil, err
	}

	return file, nil
}

// parseStream skips leading ID3v2 tags and runs the frame parser.
func parseStream(ctx context.Context, parser registry.FormatParser, src source.Source, file *File, options *openOptions) error {
	skipped, err := id3.SkipV2(src)
	switch {
	case err == nil:
	case source.IsEndOfStream(err):
		file.AddWarning(Warning{
			Stage:   "metadata",
			Message: fmt.Sprintf("truncated ID3v2 tag: %v", err),
			Offset:  skipped,
		})
	default:
		return err
	}
	file.StreamStart = src.Position()

	opts := registry.Options{
		Duration: options.duration,
		Logger:   options.logger,
	}
	if err := parser.Parse(ctx, src, file, opts); err != nil {
		return err
	}

	if file.Audio.Codec == "" && file.Format != FormatUnknown {
		file.AddWarning(Warning{
			Stage:   "sync",
			Message: "no decodable frame found",
			Offset:  file.StreamStart,
		})
	}

	if options.ignoreWarnings {
		file.Warnings = nil
	}
	return nil
}

// OpenMany opens multiple files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths.
//
// If any file fails to open, all successfully opened files are closed
// and an error is returned.
//
// Example:
//
//	files, err := mpegmeta.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer func() {
//		for _, f := range files {
//			f.Close()
//		}
//	}()
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	return OpenManyWith(ctx, paths)
}

// OpenManyWith is OpenMany with options applied to every file.
func OpenManyWith(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			file, err := OpenContext(ctx, path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, file := range results {
			if file != nil {
				file.Close()
			}
		}
		return nil, err
	}

	return results, nil
}
