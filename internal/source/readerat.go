package source

import (
	"github.com/simonhull/mpegmeta/internal/binary"
)

// ReaderAtSource reads from a random-access input of known size.
type ReaderAtSource struct {
	sr  *binary.SafeReader
	pos int64
}

// FromReaderAt returns a Source over sr starting at offset start.
func FromReaderAt(sr *binary.SafeReader, start int64) *ReaderAtSource {
	return &ReaderAtSource{sr: sr, pos: start}
}

// Position implements Source.
func (s *ReaderAtSource) Position() int64 {
	return s.pos
}

// Size implements Source.
func (s *ReaderAtSource) Size() (int64, bool) {
	return s.sr.Size(), true
}

// Peek implements Source.
func (s *ReaderAtSource) Peek(p []byte, mayBeLess bool) (int, error) {
	avail := s.sr.Size() - s.pos
	n := len(p)
	if int64(n) > avail {
		if !mayBeLess || avail <= 0 {
			return 0, ErrEndOfStream
		}
		n = int(avail)
	}
	if n == 0 {
		return 0, nil
	}

	if err := s.sr.ReadAt(p[:n], s.pos, "stream peek"); err != nil {
		return 0, readFailure(err)
	}
	return n, nil
}

// Read implements Source.
func (s *ReaderAtSource) Read(p []byte) error {
	if int64(len(p)) > s.sr.Size()-s.pos {
		s.pos = s.sr.Size()
		return ErrEndOfStream
	}
	if len(p) == 0 {
		return nil
	}

	if err := s.sr.ReadAt(p, s.pos, "stream read"); err != nil {
		return readFailure(err)
	}
	s.pos += int64(len(p))
	return nil
}

// Ignore implements Source.
func (s *ReaderAtSource) Ignore(n int64) error {
	if n > s.sr.Size()-s.pos {
		s.pos = s.sr.Size()
		return ErrEndOfStream
	}
	s.pos += n
	return nil
}
