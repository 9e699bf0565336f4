package mpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/mpegmeta/internal/binary"
)

func TestDecodeInfoTag_XingWithLAMEExtension(t *testing.T) {
	toc := make([]byte, tocSize)
	for i := range toc {
		toc[i] = byte(i * 2)
	}
	in := &XingInfoTag{
		Kind:      TagXing,
		Flags:     FlagFrames | FlagBytes | FlagTOC | FlagVBRScale,
		NumFrames: 8000,
		NumBytes:  3_500_000,
		TOC:       toc,
		VBRScale:  78,
		Encoder:   "LAME3.100",
		LAME: &LAMEExtension{
			Revision:       1,
			VBRMethod:      4,
			LowpassHz:      19500,
			EncoderDelay:   576,
			EncoderPadding: 1234,
		},
	}

	body := append(infoTag(t, in), make([]byte, 64)...)
	got, err := decodeInfoTag(body)
	require.NoError(t, err)

	assert.Equal(t, in, got)
	assert.True(t, got.HasFrames())
	assert.True(t, got.HasVBRScale())
	assert.Equal(t, "LAME3.100", got.Tool())
	assert.Equal(t, "V2.2", got.VBRProfile())
}

func TestDecodeInfoTag_Kinds(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		kind TagKind
	}{
		{"none", make([]byte, 64), TagNone},
		{"too short", []byte("Xin"), TagNone},
		{"info", infoTag(t, &XingInfoTag{Kind: TagInfo}), TagInfo},
		{"xtra", []byte("Xtra\x00\x00\x00\x00"), TagXtra},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeInfoTag(tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, got.Kind)
		})
	}
}

func TestDecodeInfoTag_BareLAME(t *testing.T) {
	body := append([]byte("LAME3.99r"), make([]byte, 20)...)

	got, err := decodeInfoTag(body)
	require.NoError(t, err)
	assert.Equal(t, TagLAME, got.Kind)
	assert.Equal(t, "3.99r", got.LAMEVersion)
}

func TestDecodeInfoTag_OptionalTrailer(t *testing.T) {
	// Fields only, no room for the encoder string.
	body := infoTag(t, &XingInfoTag{Kind: TagInfo, Flags: FlagFrames, NumFrames: 42})

	got, err := decodeInfoTag(body)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), got.NumFrames)
	assert.Empty(t, got.Encoder)
	assert.Nil(t, got.LAME)

	// An encoder that is not LAME compatible has no extension.
	body = append(infoTag(t, &XingInfoTag{Kind: TagXing, Flags: FlagFrames, NumFrames: 42, Encoder: "Fraunhofr"}), make([]byte, 32)...)
	got, err = decodeInfoTag(body)
	require.NoError(t, err)
	assert.Equal(t, "Fraunhofr", got.Tool())
	assert.Nil(t, got.LAME)
}

func TestDecodeInfoTag_Truncated(t *testing.T) {
	full := infoTag(t, &XingInfoTag{Kind: TagXing, Flags: FlagFrames | FlagTOC, NumFrames: 10})
	body := full[:20] // identifier, flags, frames and part of the TOC

	got, err := decodeInfoTag(body)
	require.Error(t, err)
	assert.ErrorIs(t, err, binary.ErrOutOfBounds)
	assert.Equal(t, TagXing, got.Kind)
	assert.Equal(t, uint32(10), got.NumFrames)
	assert.Contains(t, err.Error(), "Xing tag")
}

func TestXingInfoTag_VBRProfile(t *testing.T) {
	tests := []struct {
		flags uint32
		scale uint32
		want  string
	}{
		{FlagVBRScale, 80, "V2"},
		{FlagVBRScale, 78, "V2.2"},
		{FlagVBRScale, 100, "V0"},
		{FlagVBRScale, 0, "V10"},
		{FlagVBRScale, 101, "VBR"},
		{FlagFrames, 80, "VBR"},
	}

	for _, tt := range tests {
		tag := &XingInfoTag{Kind: TagXing, Flags: tt.flags, VBRScale: tt.scale}
		assert.Equal(t, tt.want, tag.VBRProfile(), "flags %#x scale %d", tt.flags, tt.scale)
	}
}

func TestXingInfoTag_Tool(t *testing.T) {
	tag := &XingInfoTag{Encoder: "LAME3.99 "}
	assert.Equal(t, "LAME3.99", tag.Tool())

	tag = &XingInfoTag{Encoder: "\x00\x00\x00\x00\x00\x00\x00\x00\x00"}
	assert.Empty(t, tag.Tool())
}

func TestXingInfoTag_EncodeNone(t *testing.T) {
	_, err := (&XingInfoTag{}).Encode()
	assert.Error(t, err)
}
