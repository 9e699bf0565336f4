// Package source provides the byte sources the MPEG frame parser reads from.
//
// A Source is a forward-only cursor with a small lookahead (Peek). Two
// implementations exist: FromReaderAt for random-access inputs whose size is
// known, and FromReader for one-pass streams such as HTTP request bodies.
package source

import (
	"errors"
	"fmt"
	"io"

	"github.com/mycophonic/primordium/fault"
)

// ErrEndOfStream is returned when a read, peek or skip runs past the end of
// the input. It wraps io.EOF.
var ErrEndOfStream = fmt.Errorf("end of stream: %w", io.EOF)

// Source is a forward-only byte cursor.
type Source interface {
	// Position returns the absolute offset of the next byte to be read.
	Position() int64

	// Size returns the total input size, if known.
	Size() (int64, bool)

	// Peek copies up to len(p) bytes at the current position into p without
	// advancing. When mayBeLess is false, a short result is ErrEndOfStream.
	// When mayBeLess is true, a short (non-empty) result is returned with a
	// nil error; an empty one is still ErrEndOfStream.
	Peek(p []byte, mayBeLess bool) (int, error)

	// Read fills p and advances past it.
	Read(p []byte) error

	// Ignore advances n bytes. Skipping past the end leaves the cursor at the
	// end and returns ErrEndOfStream.
	Ignore(n int64) error
}

// IsEndOfStream reports whether err marks the end of the input. A source
// fault is never the end of the input, whatever its cause.
func IsEndOfStream(err error) bool {
	if errors.Is(err, fault.ErrReadFailure) {
		return false
	}
	return errors.Is(err, io.EOF)
}

// readFailure marks err as a source fault.
func readFailure(err error) error {
	return fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
}
