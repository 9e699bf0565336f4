package mpegmeta

import (
	"github.com/mycophonic/primordium/fault"

	"github.com/simonhull/mpegmeta/internal/types"
)

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exporting from internal/types to maintain public API.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
// Re-exporting from internal/types to maintain public API.
type CorruptedFileError = types.CorruptedFileError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to maintain public API.
type Warning = types.Warning

// ErrReadFailure is wrapped by errors coming from the underlying reader, as
// opposed to problems with the data it returned.
var ErrReadFailure = fault.ErrReadFailure
