package mpeg

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/simonhull/mpegmeta/internal/binary"
)

// TagKind identifies the info tag found after the side information of the
// first frame.
type TagKind int

// Info tag kinds.
const (
	TagNone TagKind = iota
	TagInfo         // "Info": Xing layout, CBR
	TagXing         // "Xing": Xing layout, VBR
	TagLAME         // "LAME": bare encoder version
	TagXtra         // "Xtra": recognised, not decoded
)

func (k TagKind) String() string {
	switch k {
	case TagInfo:
		return "Info"
	case TagXing:
		return "Xing"
	case TagLAME:
		return "LAME"
	case TagXtra:
		return "Xtra"
	default:
		return "none"
	}
}

// Xing header flags.
const (
	FlagFrames   = 0x0001
	FlagBytes    = 0x0002
	FlagTOC      = 0x0004
	FlagVBRScale = 0x0008
)

const (
	tocSize           = 100
	encoderStringSize = 9
	lameVersionSize   = 6

	// Bytes of the LAME extension up to and including encoder delay/padding:
	// revision/VBR method, lowpass, peak (4), radio gain (2),
	// audiophile gain (2), encoding flags, bitrate, delay/padding (3).
	lameExtensionSize = 15
)

// XingInfoTag is the Xing/Info/LAME tag embedded in the first frame.
type XingInfoTag struct {
	Kind        TagKind
	Flags       uint32
	NumFrames   uint32
	NumBytes    uint32
	TOC         []byte // nil unless FlagTOC is set
	VBRScale    uint32 // 0 (best) .. 100
	Encoder     string // encoder string following the Xing fields, e.g. "LAME3.100"
	LAMEVersion string // version of a bare "LAME" tag
	LAME        *LAMEExtension
}

// LAMEExtension holds the LAME fields following the encoder string.
type LAMEExtension struct {
	Revision       uint8
	VBRMethod      uint8
	LowpassHz      int
	EncoderDelay   int // samples
	EncoderPadding int // samples
}

// HasFrames reports whether NumFrames is valid.
func (t *XingInfoTag) HasFrames() bool { return t.Flags&FlagFrames != 0 }

// HasVBRScale reports whether VBRScale is valid.
func (t *XingInfoTag) HasVBRScale() bool { return t.Flags&FlagVBRScale != 0 }

// Tool returns the encoder string with NUL padding and spaces removed.
func (t *XingInfoTag) Tool() string {
	return strings.Trim(t.Encoder, "\x00 ")
}

// VBRProfile returns the conventional quality label "V" + (100-scale)/10,
// e.g. "V2" for scale 80, or "VBR" when the tag has no usable scale.
func (t *XingInfoTag) VBRProfile() string {
	if !t.HasVBRScale() || t.VBRScale > 100 {
		return "VBR"
	}
	q := float64(100-t.VBRScale) / 10
	return "V" + strconv.FormatFloat(q, 'f', -1, 64)
}

// decodeInfoTag decodes the tag at the start of body, the bytes of the
// first frame following its side information. A body that does not start
// with a known identifier yields TagNone. The returned tag carries its Kind
// even when the body turns out to be truncated.
func decodeInfoTag(body []byte) (*XingInfoTag, error) {
	tag := &XingInfoTag{}
	if len(body) < 4 {
		return tag, nil
	}

	sr := binary.NewSafeReader(bytes.NewReader(body), int64(len(body)), "first frame")
	cr := binary.NewChainReader(binary.NewReader(sr, 4))

	switch string(body[:4]) {
	case "Info":
		tag.Kind = TagInfo
		decodeXingBody(cr, tag)
	case "Xing":
		tag.Kind = TagXing
		decodeXingBody(cr, tag)
	case "LAME":
		tag.Kind = TagLAME
		tag.LAMEVersion = strings.Trim(cr.String(lameVersionSize, "LAME version"), "\x00 ")
	case "Xtra":
		tag.Kind = TagXtra
	}

	if err := cr.Error(); err != nil {
		return tag, fmt.Errorf("%s tag: %w", tag.Kind, err)
	}
	return tag, nil
}

// decodeXingBody reads the flag-dependent Xing fields, the encoder string
// and, when the encoder is LAME compatible, the LAME extension.
func decodeXingBody(cr *binary.ChainReader, tag *XingInfoTag) {
	tag.Flags = binary.ReadChained[uint32](cr, "Xing flags")
	if tag.Flags&FlagFrames != 0 {
		tag.NumFrames = binary.ReadChained[uint32](cr, "Xing frames")
	}
	if tag.Flags&FlagBytes != 0 {
		tag.NumBytes = binary.ReadChained[uint32](cr, "Xing bytes")
	}
	if tag.Flags&FlagTOC != 0 {
		tag.TOC = cr.Bytes(tocSize, "Xing TOC")
	}
	if tag.Flags&FlagVBRScale != 0 {
		tag.VBRScale = binary.ReadChained[uint32](cr, "Xing VBR scale")
	}

	// The encoder string and the LAME extension are optional.
	if cr.Error() != nil || cr.Remaining() < encoderStringSize {
		return
	}
	tag.Encoder = cr.String(encoderStringSize, "encoder")

	if !lameCompatible(tag.Encoder) || cr.Remaining() < lameExtensionSize {
		return
	}
	ext := cr.Bytes(lameExtensionSize, "LAME extension")
	if ext == nil {
		return
	}
	tag.LAME = &LAMEExtension{
		Revision:       ext[0] >> 4,
		VBRMethod:      ext[0] & 0x0F,
		LowpassHz:      int(ext[1]) * 100,
		EncoderDelay:   int(binary.Bits(ext, 12, 0, 12)),
		EncoderPadding: int(binary.Bits(ext, 13, 4, 12)),
	}
}

// lameCompatible reports whether an encoder string is followed by the
// LAME extension layout.
func lameCompatible(encoder string) bool {
	for _, prefix := range []string{"LAME", "L3.99", "Lavc", "Lavf", "GOGO"} {
		if strings.HasPrefix(encoder, prefix) {
			return true
		}
	}
	return false
}
