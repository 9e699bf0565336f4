package source

import (
	"bufio"
	"errors"
	"io"
	"math"
)

// streamBufferSize must exceed the largest Peek the parser issues.
const streamBufferSize = 8 << 10

// StreamSource reads a one-pass stream. The lookahead is served from a
// bufio.Reader.
type StreamSource struct {
	br   *bufio.Reader
	pos  int64
	size int64
}

// FromReader returns a Source over r. size is the stream length when known
// (for example from Content-Length) or negative when not.
func FromReader(r io.Reader, size int64) *StreamSource {
	return &StreamSource{
		br:   bufio.NewReaderSize(r, streamBufferSize),
		size: size,
	}
}

// Position implements Source.
func (s *StreamSource) Position() int64 {
	return s.pos
}

// Size implements Source.
func (s *StreamSource) Size() (int64, bool) {
	return s.size, s.size >= 0
}

// Peek implements Source.
func (s *StreamSource) Peek(p []byte, mayBeLess bool) (int, error) {
	buf, err := s.br.Peek(len(p))
	n := copy(p, buf)
	if err == nil {
		return n, nil
	}

	if errors.Is(err, io.EOF) {
		if n == 0 || !mayBeLess {
			return 0, ErrEndOfStream
		}
		return n, nil
	}
	return 0, readFailure(err)
}

// Read implements Source.
func (s *StreamSource) Read(p []byte) error {
	for got := 0; got < len(p); {
		n, err := s.br.Read(p[got:])
		got += n
		s.pos += int64(n)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrEndOfStream
			}
			return readFailure(err)
		}
	}
	return nil
}

// Ignore implements Source.
func (s *StreamSource) Ignore(n int64) error {
	for n > 0 {
		chunk := n
		if chunk > math.MaxInt32 {
			chunk = math.MaxInt32
		}

		d, err := s.br.Discard(int(chunk))
		s.pos += int64(d)
		n -= int64(d)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrEndOfStream
			}
			return readFailure(err)
		}
	}
	return nil
}
