package mpeg

import (
	"context"

	"github.com/simonhull/mpegmeta/internal/registry"
	"github.com/simonhull/mpegmeta/internal/source"
	"github.com/simonhull/mpegmeta/internal/types"
)

// formatParser implements registry.FormatParser for both MPEG audio and
// ADTS streams; the frame headers tell them apart.
type formatParser struct{}

// Parse implements registry.FormatParser.
func (formatParser) Parse(ctx context.Context, src source.Source, file *types.File, opts registry.Options) error {
	return Parse(ctx, src, file, Options{
		Duration: opts.Duration,
		HasID3v1: file.HasID3v1,
		Logger:   opts.Logger,
	})
}

func init() {
	registry.Register(types.FormatMPEG, formatParser{})
	registry.Register(types.FormatADTS, formatParser{})
}
