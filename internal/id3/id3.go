// Package id3 locates the ID3 tag containers that surround MPEG audio
// streams: ID3v2 tags in front of the first frame and the 128-byte ID3v1
// trailer at the end of a file.
//
// Tag contents are not decoded; only their extent matters to the frame
// parser.
package id3

import (
	"fmt"

	"github.com/simonhull/mpegmeta/internal/binary"
	"github.com/simonhull/mpegmeta/internal/source"
)

const (
	// V2HeaderSize is the size of the ID3v2 header (and of the optional footer).
	V2HeaderSize = 10
	// V1Size is the size of an ID3v1 trailer.
	V1Size = 128

	flagFooter = 0x10
)

// V2Header represents an ID3v2 tag header.
type V2Header struct {
	Version  byte // Major version (2, 3 or 4)
	Revision byte // Minor version
	Flags    byte
	Size     uint32 // Tag size excluding header and footer, decoded from synchsafe
}

// TotalSize returns the number of bytes the tag occupies in the stream.
func (h V2Header) TotalSize() int64 {
	n := int64(V2HeaderSize) + int64(h.Size)
	if h.Flags&flagFooter != 0 {
		n += V2HeaderSize
	}
	return n
}

// ParseV2Header decodes a 10-byte ID3v2 header. It reports false when buf
// does not start with a well-formed header.
func ParseV2Header(buf []byte) (V2Header, bool) {
	if len(buf) < V2HeaderSize || string(buf[0:3]) != "ID3" {
		return V2Header{}, false
	}

	// Version and revision are never 0xFF; size bytes are synchsafe.
	if buf[3] == 0xFF || buf[4] == 0xFF {
		return V2Header{}, false
	}
	for _, b := range buf[6:10] {
		if b&0x80 != 0 {
			return V2Header{}, false
		}
	}

	return V2Header{
		Version:  buf[3],
		Revision: buf[4],
		Flags:    buf[5],
		Size:     decodeSynchsafe(buf[6:10]),
	}, true
}

// decodeSynchsafe decodes a 28-bit synchsafe integer (7 bits per byte).
func decodeSynchsafe(b []byte) uint32 {
	return uint32(b[0])<<21 | uint32(b[1])<<14 | uint32(b[2])<<7 | uint32(b[3])
}

// SkipV2 advances src past every consecutive ID3v2 tag at its current
// position and returns the number of bytes skipped. A stream too short to
// hold a header is not an error.
func SkipV2(src source.Source) (int64, error) {
	var skipped int64
	buf := make([]byte, V2HeaderSize)

	for {
		if _, err := src.Peek(buf, false); err != nil {
			if source.IsEndOfStream(err) {
				return skipped, nil
			}
			return skipped, err
		}

		h, ok := ParseV2Header(buf)
		if !ok {
			return skipped, nil
		}

		if err := src.Ignore(h.TotalSize()); err != nil {
			return skipped, fmt.Errorf("ID3v2.%d tag of %d bytes: %w", h.Version, h.TotalSize(), err)
		}
		skipped += h.TotalSize()
	}
}

// HasV1 reports whether the last 128 bytes of sr hold an ID3v1 tag.
func HasV1(sr *binary.SafeReader) bool {
	if sr.Size() < V1Size {
		return false
	}

	magic := make([]byte, 3)
	if err := sr.ReadAt(magic, sr.Size()-V1Size, "ID3v1 magic"); err != nil {
		return false
	}
	return string(magic) == "TAG"
}
