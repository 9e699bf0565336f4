package mpeg

import (
	"bytes"

	"github.com/simonhull/mpegmeta/internal/source"
)

// syncWindowSize is the lookahead used to search for a sync word.
const syncWindowSize = 1024

const syncByte1 = 0xFF

// scanner finds frame sync words in a Source.
type scanner struct {
	src     source.Source
	window  [syncWindowSize]byte
	skipped int64 // bytes passed over while searching
}

// next advances src to the next 0xFF byte whose successor has its top three
// bits set. Bytes before it are consumed; the sync word itself is not.
//
// A 0xFF in the last byte of a full window is kept for the next window so
// a sync word straddling the refill boundary is still found. A partial
// window without a sync word means end of stream.
func (s *scanner) next() error {
	for {
		n, err := s.src.Peek(s.window[:], true)
		if err != nil {
			return err
		}
		buf := s.window[:n]

		pos := 0
		for {
			i := bytes.IndexByte(buf[pos:], syncByte1)
			if i < 0 {
				break
			}
			pos += i
			if pos+1 >= n {
				break
			}
			if buf[pos+1]&0xE0 == 0xE0 {
				s.skipped += int64(pos)
				return s.src.Ignore(int64(pos))
			}
			pos++
		}

		if n < len(s.window) {
			return source.ErrEndOfStream
		}

		advance := n
		if buf[n-1] == syncByte1 {
			advance--
		}
		s.skipped += int64(advance)
		if err := s.src.Ignore(int64(advance)); err != nil {
			return err
		}
	}
}

// sync positions the stream on the next sync word and applies the resync
// heuristic: if no frame was decoded since the previous sync, the frames
// counted before it are taken to be spurious and counting starts over.
//
// This is a heuristic. It also fires, harmlessly, when no frame has been
// decoded at all yet.
func (p *parser) sync() error {
	if err := p.scan.next(); err != nil {
		return err
	}

	st := p.st
	p.log.Debug("sync", "offset", p.src.Position(), "frameCount", st.frameCount)
	if st.syncFrameCount == st.frameCount {
		p.log.Debug("re-synced MPEG stream", "frameCount", st.frameCount)
		st.resync()
	}
	st.syncFrameCount = st.frameCount
	return nil
}
