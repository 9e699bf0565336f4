package mpegmeta

import (
	"log/slog"
)

// Option configures behavior when opening audio files.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	file, err := mpegmeta.Open("song.mp3",
//	    mpegmeta.WithDuration(),
//	    mpegmeta.WithStrictParsing(),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	strictParsing  bool         // Fail on any warning
	ignoreWarnings bool         // Suppress all warnings
	duration       bool         // Walk the whole stream if that is what it takes
	logger         *slog.Logger // Debug output, nil discards
	streamSize     int64        // Size of a one-pass stream, -1 if unknown
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		streamSize: -1,
	}
}

// check applies strict parsing to a parsed file.
func (o *openOptions) check(file *File) error {
	if !o.strictParsing || len(file.Warnings) == 0 {
		return nil
	}

	w := file.Warnings[0]
	return &CorruptedFileError{
		Path:   file.Path,
		Reason: "strict parsing failed: " + w.Message,
		Offset: w.Offset,
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, mpegmeta steps over invalid frame headers and corrupt frames,
// returning warnings alongside the parsed data. With strict parsing
// enabled, the first warning becomes a *CorruptedFileError.
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// File.Warnings will always be empty. WithStrictParsing then has nothing
// to act on.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

// WithDuration asks for a duration even when the stream carries no
// Xing/Info frame count and is not constant bitrate with a known size.
// The duration is then counted frame by frame, which reads the whole
// stream.
//
// Example:
//
//	file, err := mpegmeta.Open("vbr-without-tag.mp3", mpegmeta.WithDuration())
func WithDuration() Option {
	return func(o *openOptions) {
		o.duration = true
	}
}

// WithLogger sends debug output of the frame parser (sync offsets,
// resyncs, decoded frames and the chosen duration strategy) to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) {
		o.logger = logger
	}
}

// WithStreamSize gives Parse the total size of its stream, for example
// from a Content-Length header. It lets a constant bitrate stream get a
// duration without being read to the end. Open ignores it.
func WithStreamSize(size int64) Option {
	return func(o *openOptions) {
		o.streamSize = size
	}
}
