package mpeg

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"

	"github.com/simonhull/mpegmeta/internal/binary"
)

// Encode returns the 4-byte header carrying f.
func (f MPEGFields) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)

	fields := []struct {
		v uint64
		n uint8
	}{
		{0x7FF, 11},
		{uint64(f.VersionIndex), 2},
		{uint64(f.LayerCode), 2},
		{boolBit(!f.Protected), 1},
		{uint64(f.BitrateIndex), 4},
		{uint64(f.SampleRateIndex), 2},
		{boolBit(f.Padding), 1},
		{boolBit(f.Private), 1},
		{uint64(f.ChannelModeIndex), 2},
		{uint64(f.ModeExtension), 2},
		{boolBit(f.Copyright), 1},
		{boolBit(f.Original), 1},
		{uint64(f.Emphasis), 2},
	}
	for _, field := range fields {
		if err := w.WriteBits(field.v, field.n); err != nil {
			return nil, fmt.Errorf("encode MPEG header: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encode MPEG header: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode returns the 7-byte ADTS header. The CRC, when Protected is set,
// is not included.
func (h *ADTSHeader) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)

	id := uint64(0) // MPEG-4
	if h.Version == 2 {
		id = 1
	}

	fields := []struct {
		v uint64
		n uint8
	}{
		{0xFFF, 12},
		{id, 1},
		{0, 2}, // layer
		{boolBit(!h.Protected), 1},
		{uint64(h.ProfileIndex), 2},
		{uint64(h.SampleRateIndex), 4},
		{boolBit(h.Private), 1},
		{uint64(h.ChannelConfig), 3},
		{0, 4}, // original, home, copyright id bit and start
		{uint64(h.FrameLength), 13},
		{uint64(h.BufferFullness), 11},
		{uint64(h.RawDataBlocks), 2},
	}
	for _, field := range fields {
		if err := w.WriteBits(field.v, field.n); err != nil {
			return nil, fmt.Errorf("encode ADTS header: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encode ADTS header: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode returns the tag as it appears after the side information of the
// first frame: identifier, flag-selected fields, encoder string and LAME
// extension. TOC is zero-filled when shorter than 100 bytes.
func (t *XingInfoTag) Encode() ([]byte, error) {
	var buf bytes.Buffer
	sw := binary.NewSafeWriter(&buf)

	switch t.Kind {
	case TagInfo, TagXing, TagLAME, TagXtra:
		_ = sw.WriteString(t.Kind.String())
	default:
		return nil, fmt.Errorf("encode info tag: nothing to encode for kind %s", t.Kind)
	}

	if t.Kind == TagLAME {
		_ = sw.WriteFixed(t.LAMEVersion, lameVersionSize)
		return buf.Bytes(), sw.Err()
	}
	if t.Kind == TagXtra {
		return buf.Bytes(), sw.Err()
	}

	_ = binary.Write(sw, t.Flags)
	if t.Flags&FlagFrames != 0 {
		_ = binary.Write(sw, t.NumFrames)
	}
	if t.Flags&FlagBytes != 0 {
		_ = binary.Write(sw, t.NumBytes)
	}
	if t.Flags&FlagTOC != 0 {
		toc := make([]byte, tocSize)
		copy(toc, t.TOC)
		_ = sw.WriteBytes(toc)
	}
	if t.Flags&FlagVBRScale != 0 {
		_ = binary.Write(sw, t.VBRScale)
	}

	if t.Encoder != "" {
		_ = sw.WriteFixed(t.Encoder, encoderStringSize)
	}
	if t.LAME != nil {
		ext := make([]byte, lameExtensionSize)
		ext[0] = t.LAME.Revision<<4 | t.LAME.VBRMethod&0x0F
		ext[1] = byte(t.LAME.LowpassHz / 100)
		ext[12] = byte(t.LAME.EncoderDelay >> 4)
		ext[13] = byte(t.LAME.EncoderDelay&0x0F)<<4 | byte(t.LAME.EncoderPadding>>8&0x0F)
		ext[14] = byte(t.LAME.EncoderPadding)
		_ = sw.WriteBytes(ext)
	}

	if err := sw.Err(); err != nil {
		return nil, fmt.Errorf("encode info tag: %w", err)
	}
	return buf.Bytes(), nil
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
