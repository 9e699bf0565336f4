package mpeg

import (
	"errors"
	"math"
	"strconv"

	"github.com/simonhull/mpegmeta/internal/binary"
)

// HeaderSize is the size of a classic MPEG audio frame header, and of the
// part of an ADTS header DecodeHeader looks at.
const HeaderSize = 4

// adtsHeaderSize is the size of an ADTS header without CRC.
const adtsHeaderSize = 7

// ErrInvalidHeader is matched by every *HeaderError.
var ErrInvalidHeader = errors.New("invalid frame header")

// HeaderError reports a header field holding a free, reserved or otherwise
// unusable value.
type HeaderError struct {
	Field string
}

func (e *HeaderError) Error() string {
	return "cannot determine " + e.Field
}

// Is makes errors.Is(err, ErrInvalidHeader) hold for every HeaderError.
func (e *HeaderError) Is(target error) bool {
	return target == ErrInvalidHeader
}

// Header is a decoded frame header: either *MPEGHeader or *ADTSHeader.
type Header interface {
	// Container returns the container name, "MPEG" or "ADTS/MPEG-<n>".
	Container() string
	// Codec returns the codec name, "MP1".."MP3" or "AAC".
	Codec() string
	// SamplingRate returns the sample rate in Hz.
	SamplingRate() int
	// CRCProtected reports whether a 16-bit CRC follows the header.
	CRCProtected() bool
}

// MPEGFields holds the raw bit fields of a classic header
// (AAAAAAAA AAABBCCD EEEEFFGH IIJJKLMM).
type MPEGFields struct {
	VersionIndex     uint8 // B
	LayerCode        uint8 // C
	BitrateIndex     uint8 // E
	SampleRateIndex  uint8 // F
	ChannelModeIndex uint8 // I
	ModeExtension    uint8 // J, joint stereo only
	Emphasis         uint8 // M
	Protected        bool  // CRC present (D bit clear)
	Padding          bool  // G
	Private          bool  // H
	Copyright        bool  // K
	Original         bool  // L
}

// MPEGHeader is a decoded MPEG-1/2/2.5 Layer I/II/III frame header.
type MPEGHeader struct {
	MPEGFields

	Version     Version
	Layer       int
	ChannelMode ChannelMode
	Bitrate     int // bit/s
	SampleRate  int // Hz
}

// Container implements Header.
func (h *MPEGHeader) Container() string { return "MPEG" }

// Codec implements Header.
func (h *MPEGHeader) Codec() string { return "MP" + strconv.Itoa(h.Layer) }

// SamplingRate implements Header.
func (h *MPEGHeader) SamplingRate() int { return h.SampleRate }

// CRCProtected implements Header.
func (h *MPEGHeader) CRCProtected() bool { return h.Protected }

// Channels returns 1 for mono and 2 for every other channel mode.
func (h *MPEGHeader) Channels() int {
	if h.ChannelMode == Mono {
		return 1
	}
	return 2
}

// SamplesPerFrame returns the number of samples per channel in one frame.
func (h *MPEGHeader) SamplesPerFrame() int {
	row := 1
	if h.Version == Version1 {
		row = 0
	}
	return samplesPerFrameTable[row][h.Layer]
}

// SlotSize returns the padding slot size in bytes.
func (h *MPEGHeader) SlotSize() int {
	if h.Layer == 1 {
		return 4
	}
	return 1
}

// SideInfoLength returns the size of the Layer III side information that
// follows the header (and CRC). Layers I and II have none.
func (h *MPEGHeader) SideInfoLength() int {
	if h.Layer != 3 {
		return 0
	}
	if h.ChannelMode == Mono {
		if h.Version == Version1 {
			return 17
		}
		return 9
	}
	if h.Version == Version1 {
		return 32
	}
	return 17
}

// FrameSize returns the frame length in bytes, header included.
func (h *MPEGHeader) FrameSize() int {
	size := float64(h.SamplesPerFrame()) / 8 * float64(h.Bitrate) / float64(h.SampleRate)
	if h.Padding {
		size += float64(h.SlotSize())
	}
	return int(math.Floor(size))
}

// Duration returns the playing time of n frames in seconds.
func (h *MPEGHeader) Duration(n int64) float64 {
	return float64(n) * float64(h.SamplesPerFrame()) / float64(h.SampleRate)
}

// ADTSHeader is a decoded ADTS (AAC) frame header.
//
// FrameLength is split across the header: DecodeHeader only sees its top
// two bits (already shifted into place). CompleteFrameLength adds the low
// eleven bits from the three bytes that follow.
type ADTSHeader struct {
	Version         int // 2 or 4
	ProfileIndex    uint8
	Profile         string
	SampleRateIndex uint8
	SampleRate      int
	ChannelConfig   uint8
	ChannelLayout   []string
	Protected       bool
	Private         bool

	FrameLength    int // bytes, header included
	BufferFullness int
	RawDataBlocks  int // number of raw data blocks minus one

	complete bool
}

// Container implements Header.
func (h *ADTSHeader) Container() string {
	if h.Version == 4 {
		return "ADTS/MPEG-4"
	}
	return "ADTS/MPEG-2"
}

// Codec implements Header.
func (h *ADTSHeader) Codec() string { return "AAC" }

// SamplingRate implements Header.
func (h *ADTSHeader) SamplingRate() int { return h.SampleRate }

// CRCProtected implements Header.
func (h *ADTSHeader) CRCProtected() bool { return h.Protected }

// Channels returns the number of channels in the layout.
func (h *ADTSHeader) Channels() int { return len(h.ChannelLayout) }

// SamplesPerFrame returns the AAC frame length in samples.
func (h *ADTSHeader) SamplesPerFrame() int { return 1024 }

// CompleteFrameLength adds the low 11 bits of the frame length from next,
// the three header bytes following the first four. It also picks up the
// buffer fullness and raw data block count. It is a no-op when called twice.
func (h *ADTSHeader) CompleteFrameLength(next []byte) {
	if h.complete {
		return
	}
	h.FrameLength += int(binary.Bits(next, 0, 0, 11))
	h.BufferFullness = int(binary.Bits(next, 1, 3, 11))
	h.RawDataBlocks = int(binary.Bits(next, 2, 6, 2))
	h.complete = true
}

// DecodeHeader decodes the 4 bytes at the start of b, which must begin with
// the 11-bit sync word. Reserved or unusable field values yield a
// *HeaderError.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize || b[0] != 0xFF || b[1]&0xE0 != 0xE0 {
		return nil, &HeaderError{Field: "sync word"}
	}

	versionIndex := uint8(binary.Bits(b, 1, 3, 2))
	layerCode := uint8(binary.Bits(b, 1, 5, 2))
	protected := !binary.BitSet(b, 1, 7)

	if versionIndex > 1 && layerCode == 0 {
		h, err := decodeADTS(b, versionIndex, protected)
		if err != nil {
			return nil, err
		}
		return h, nil
	}

	h, err := decodeMPEG(b, versionIndex, layerCode, protected)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func decodeMPEG(b []byte, versionIndex, layerCode uint8, protected bool) (*MPEGHeader, error) {
	h := &MPEGHeader{
		MPEGFields: MPEGFields{
			VersionIndex:     versionIndex,
			LayerCode:        layerCode,
			Protected:        protected,
			BitrateIndex:     uint8(binary.Bits(b, 2, 0, 4)),
			SampleRateIndex:  uint8(binary.Bits(b, 2, 4, 2)),
			Padding:          binary.BitSet(b, 2, 6),
			Private:          binary.BitSet(b, 2, 7),
			ChannelModeIndex: uint8(binary.Bits(b, 3, 0, 2)),
			ModeExtension:    uint8(binary.Bits(b, 3, 2, 2)),
			Copyright:        binary.BitSet(b, 3, 4),
			Original:         binary.BitSet(b, 3, 5),
			Emphasis:         uint8(binary.Bits(b, 3, 6, 2)),
		},
		Version: Version(versionIndex),
		Layer:   layerFromCode[layerCode],
	}
	h.ChannelMode = ChannelMode(h.ChannelModeIndex)

	if h.Version == versionReserved {
		return nil, &HeaderError{Field: "version"}
	}
	if h.Layer == 0 {
		return nil, &HeaderError{Field: "layer"}
	}

	var ok bool
	if h.Bitrate, ok = lookupBitrate(h.Version, h.Layer, uint32(h.BitrateIndex)); !ok {
		return nil, &HeaderError{Field: "bit-rate"}
	}
	if h.SampleRate, ok = lookupSampleRate(h.Version, uint32(h.SampleRateIndex)); !ok {
		return nil, &HeaderError{Field: "sampling-rate"}
	}
	return h, nil
}

func decodeADTS(b []byte, versionIndex uint8, protected bool) (*ADTSHeader, error) {
	h := &ADTSHeader{
		Version:         2,
		ProfileIndex:    uint8(binary.Bits(b, 2, 0, 2)),
		SampleRateIndex: uint8(binary.Bits(b, 2, 2, 4)),
		Private:         binary.BitSet(b, 2, 6),
		ChannelConfig:   uint8(binary.Bits(b, 2, 7, 3)),
		Protected:       protected,
		FrameLength:     int(binary.Bits(b, 3, 6, 2)) << 11,
	}
	if versionIndex == 2 {
		h.Version = 4
	}
	h.Profile = adtsProfiles[h.ProfileIndex]

	var ok bool
	if h.SampleRate, ok = lookupADTSSampleRate(uint32(h.SampleRateIndex)); !ok {
		return nil, &HeaderError{Field: "sampling-rate"}
	}
	if h.ChannelLayout, ok = lookupADTSChannels(uint32(h.ChannelConfig)); !ok {
		return nil, &HeaderError{Field: "channel configuration"}
	}
	return h, nil
}
