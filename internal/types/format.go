package types

import (
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/simonhull/mpegmeta/internal/binary"
	"github.com/simonhull/mpegmeta/internal/id3"
)

// Format represents the detected stream format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatMPEG represents MPEG-1/2/2.5 Audio Layer I, II or III streams.
	FormatMPEG
	// FormatADTS represents AAC in ADTS framing.
	FormatADTS
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatMPEG:
		return "MPEG Audio"
	case FormatADTS:
		return "ADTS"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatMPEG:
		return []string{".mp3", ".mp2", ".mp1", ".mpa"}
	case FormatADTS:
		return []string{".aac", ".adts"}
	case FormatUnknown:
		return nil
	default:
		return nil
	}
}

// DetectFormat determines the stream format by examining the first frame
// sync word within 1024 bytes after any leading ID3v2 tags. When there is
// none, a known file extension decides.
//
// Detection only looks at the sync word and the layer bits. It does not
// validate the frame header; the frame parser does that and resynchronises
// on garbage.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	// File must be at least 4 bytes for any meaningful detection
	if size < 4 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	// Skip ID3v2 tags to reach the first frame
	offset := int64(0)
	head := make([]byte, id3.V2HeaderSize)
	for offset+id3.V2HeaderSize <= size {
		if err := sr.ReadAt(head, offset, "ID3v2 header"); err != nil {
			break
		}
		h, ok := id3.ParseV2Header(head)
		if !ok {
			break
		}
		offset += h.TotalSize()
	}

	window := make([]byte, max(0, min(syncSearchSize, size-offset)))
	if len(window) < 2 || sr.ReadAt(window, offset, "frame sync") != nil {
		// An ID3v2 tag with nothing after it
		if offset > 0 {
			return FormatMPEG, nil
		}
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	if magic := findSync(window); magic != nil {
		return formatOf(magic), nil
	}

	// Tagged files may carry more padding than the search window.
	if offset > 0 {
		return FormatMPEG, nil
	}
	if f := formatFromExtension(path); f != FormatUnknown {
		return f, nil
	}
	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "no frame sync near start of stream",
	}
}

// syncSearchSize bounds how far past the tags DetectFormat looks for a
// sync word.
const syncSearchSize = 1024

// findSync returns the two sync bytes of the first sync word in buf, or nil.
func findSync(buf []byte) []byte {
	for i := 0; i+1 < len(buf); i++ {
		if buf[i] == 0xFF && buf[i+1]&0xE0 == 0xE0 {
			return buf[i : i+2]
		}
	}
	return nil
}

// formatOf classifies a sync word. ADTS has MPEG-2/4 version bits with
// layer 00.
func formatOf(magic []byte) Format {
	if binary.Bits(magic, 1, 3, 2) > 1 && binary.Bits(magic, 1, 5, 2) == 0 {
		return FormatADTS
	}
	return FormatMPEG
}

// formatFromExtension matches path against Format.Extensions.
func formatFromExtension(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range []Format{FormatMPEG, FormatADTS} {
		if slices.Contains(f.Extensions(), ext) {
			return f
		}
	}
	return FormatUnknown
}
