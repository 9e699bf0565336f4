// Package registry manages the stream parsers for the supported formats.
package registry

import (
	"context"
	"log/slog"

	"github.com/simonhull/mpegmeta/internal/source"
	"github.com/simonhull/mpegmeta/internal/types"
)

// Options is what a parser needs to know about the caller's preferences.
type Options struct {
	// Duration asks for a duration even if every frame has to be visited.
	Duration bool

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// FormatParser is the interface all format parsers implement.
type FormatParser interface {
	// Parse reads src from its current position and fills in file.
	// Path, Format, Size and the tag layout are set by the caller.
	Parse(ctx context.Context, src source.Source, file *types.File, opts Options) error
}

// parsers maps formats to their parsers.
var parsers = make(map[types.Format]FormatParser)

// Register registers a parser for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, parser FormatParser) {
	parsers[format] = parser
}

// Get returns the parser for a given format.
// Returns nil if no parser is registered for the format.
func Get(format types.Format) FormatParser {
	return parsers[format]
}
