package mpeg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHeader_MPEG1Layer3(t *testing.T) {
	h, err := DecodeHeader([]byte{0xFF, 0xFB, 0x90, 0x64})
	require.NoError(t, err)

	mh, ok := h.(*MPEGHeader)
	require.True(t, ok, "want *MPEGHeader, got %T", h)

	assert.Equal(t, "MPEG", mh.Container())
	assert.Equal(t, "MP3", mh.Codec())
	assert.Equal(t, Version1, mh.Version)
	assert.Equal(t, 3, mh.Layer)
	assert.Equal(t, 128000, mh.Bitrate)
	assert.Equal(t, 44100, mh.SamplingRate())
	assert.Equal(t, JointStereo, mh.ChannelMode)
	assert.Equal(t, uint8(2), mh.ModeExtension)
	assert.False(t, mh.CRCProtected())
	assert.False(t, mh.Padding)
	assert.True(t, mh.Original)
	assert.False(t, mh.Copyright)
	assert.Equal(t, 2, mh.Channels())
	assert.Equal(t, 1152, mh.SamplesPerFrame())
	assert.Equal(t, 32, mh.SideInfoLength())
	assert.Equal(t, 417, mh.FrameSize())
}

func TestMPEGHeader_Derived(t *testing.T) {
	tests := []struct {
		name      string
		fields    MPEGFields
		version   Version
		layer     int
		bitrate   int
		rate      int
		spf       int
		sideInfo  int
		frameSize int
		channels  int
	}{
		{
			name:   "MPEG-1 Layer I padded",
			fields: MPEGFields{VersionIndex: 3, LayerCode: 3, BitrateIndex: 12, Padding: true},
			version: Version1, layer: 1, bitrate: 384000, rate: 44100,
			spf: 384, sideInfo: 0, frameSize: 421, channels: 2,
		},
		{
			name:   "MPEG-1 Layer II 48 kHz",
			fields: MPEGFields{VersionIndex: 3, LayerCode: 2, BitrateIndex: 10, SampleRateIndex: 1},
			version: Version1, layer: 2, bitrate: 192000, rate: 48000,
			spf: 1152, sideInfo: 0, frameSize: 576, channels: 2,
		},
		{
			name:   "MPEG-2 Layer III mono",
			fields: MPEGFields{VersionIndex: 2, LayerCode: 1, BitrateIndex: 8, ChannelModeIndex: 3},
			version: Version2, layer: 3, bitrate: 64000, rate: 22050,
			spf: 576, sideInfo: 9, frameSize: 208, channels: 1,
		},
		{
			name:   "MPEG-2.5 Layer III stereo padded",
			fields: MPEGFields{VersionIndex: 0, LayerCode: 1, BitrateIndex: 4, SampleRateIndex: 2, Padding: true},
			version: Version25, layer: 3, bitrate: 32000, rate: 8000,
			spf: 576, sideInfo: 17, frameSize: 289, channels: 2,
		},
		{
			name:   "MPEG-1 Layer III mono 32 kHz",
			fields: MPEGFields{VersionIndex: 3, LayerCode: 1, BitrateIndex: 1, SampleRateIndex: 2, ChannelModeIndex: 3},
			version: Version1, layer: 3, bitrate: 32000, rate: 32000,
			spf: 1152, sideInfo: 17, frameSize: 144, channels: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.fields.Encode()
			require.NoError(t, err)

			h, err := DecodeHeader(b)
			require.NoError(t, err)
			mh := h.(*MPEGHeader)

			assert.Equal(t, tt.version, mh.Version)
			assert.Equal(t, tt.layer, mh.Layer)
			assert.Equal(t, tt.bitrate, mh.Bitrate)
			assert.Equal(t, tt.rate, mh.SampleRate)
			assert.Equal(t, tt.spf, mh.SamplesPerFrame())
			assert.Equal(t, tt.sideInfo, mh.SideInfoLength())
			assert.Equal(t, tt.frameSize, mh.FrameSize())
			assert.Equal(t, tt.channels, mh.Channels())
		})
	}
}

// Every valid combination of header fields survives an encode/decode
// round trip.
func TestDecodeHeader_RoundTrip(t *testing.T) {
	for _, vi := range []uint8{0, 2, 3} {
		for lc := uint8(1); lc <= 3; lc++ {
			for bri := uint8(1); bri <= 14; bri++ {
				for sri := uint8(0); sri <= 2; sri++ {
					for cm := uint8(0); cm <= 3; cm++ {
						f := MPEGFields{
							VersionIndex:     vi,
							LayerCode:        lc,
							BitrateIndex:     bri,
							SampleRateIndex:  sri,
							ChannelModeIndex: cm,
							ModeExtension:    bri & 3,
							Emphasis:         sri,
							Protected:        bri%2 == 0,
							Padding:          cm%2 == 1,
							Private:          sri == 1,
							Copyright:        lc == 2,
							Original:         vi == 3,
						}

						b, err := f.Encode()
						require.NoError(t, err)
						require.Len(t, b, HeaderSize)

						h, err := DecodeHeader(b)
						require.NoError(t, err, "fields %+v", f)
						mh, ok := h.(*MPEGHeader)
						require.True(t, ok)
						require.Equal(t, f, mh.MPEGFields)
						require.Equal(t, Version(vi), mh.Version)
						require.Equal(t, layerFromCode[lc], mh.Layer)
					}
				}
			}
		}
	}
}

func TestDecodeHeader_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		b     []byte
		field string
	}{
		{"no sync", []byte{0xFF, 0x1B, 0x90, 0x64}, "sync word"},
		{"short", []byte{0xFF, 0xFB}, "sync word"},
		{"free bitrate", []byte{0xFF, 0xFB, 0x00, 0x00}, "bit-rate"},
		{"bad bitrate", []byte{0xFF, 0xFB, 0xF0, 0x00}, "bit-rate"},
		{"reserved sampling rate", []byte{0xFF, 0xFB, 0x9C, 0x00}, "sampling-rate"},
		{"reserved version", []byte{0xFF, 0xEB, 0x90, 0x00}, "version"},
		{"reserved layer", []byte{0xFF, 0xE1, 0x90, 0x00}, "layer"},
		{"ADTS reserved sampling rate", []byte{0xFF, 0xF1, 0x74, 0x80}, "sampling-rate"},
		{"ADTS explicit sampling rate", []byte{0xFF, 0xF1, 0x7C, 0x80}, "sampling-rate"},
		{"ADTS channel configuration 0", []byte{0xFF, 0xF1, 0x50, 0x00}, "channel configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := DecodeHeader(tt.b)
			require.Error(t, err)
			assert.Nil(t, h)
			assert.True(t, errors.Is(err, ErrInvalidHeader))

			var he *HeaderError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.field, he.Field)
			assert.Equal(t, "cannot determine "+tt.field, err.Error())
		})
	}
}

func TestDecodeHeader_ADTS(t *testing.T) {
	tests := []struct {
		version   int
		container string
	}{
		{4, "ADTS/MPEG-4"},
		{2, "ADTS/MPEG-2"},
	}

	for _, tt := range tests {
		t.Run(tt.container, func(t *testing.T) {
			in := &ADTSHeader{
				Version:         tt.version,
				ProfileIndex:    1,
				SampleRateIndex: 3,
				ChannelConfig:   6,
				FrameLength:     0x973,
				BufferFullness:  0x7FF,
				RawDataBlocks:   1,
			}
			b, err := in.Encode()
			require.NoError(t, err)

			h, err := DecodeHeader(b)
			require.NoError(t, err)
			ah, ok := h.(*ADTSHeader)
			require.True(t, ok, "want *ADTSHeader, got %T", h)

			assert.Equal(t, tt.container, ah.Container())
			assert.Equal(t, "AAC", ah.Codec())
			assert.Equal(t, "AAC LC", ah.Profile)
			assert.Equal(t, 48000, ah.SamplingRate())
			assert.Equal(t, 6, ah.Channels())
			assert.Equal(t, []string{FrontCenter, FrontLeft, FrontRight, BackLeft, BackRight, LFE}, ah.ChannelLayout)
			assert.False(t, ah.CRCProtected())
			assert.Equal(t, 1024, ah.SamplesPerFrame())

			// Only the high fragment is known from the first four bytes.
			assert.Equal(t, 0x800, ah.FrameLength)

			ah.CompleteFrameLength(b[HeaderSize:])
			assert.Equal(t, 0x973, ah.FrameLength)
			assert.Equal(t, 0x7FF, ah.BufferFullness)
			assert.Equal(t, 1, ah.RawDataBlocks)

			ah.CompleteFrameLength(b[HeaderSize:])
			assert.Equal(t, 0x973, ah.FrameLength, "second call must not add again")
		})
	}
}

func TestDecodeHeader_ADTSTables(t *testing.T) {
	rates := []int{96000, 88200, 64000, 48000, 44100, 32000, 24000, 22050, 16000, 12000, 11025, 8000, 7350}
	for i, want := range rates {
		t.Run(fmt.Sprintf("sfi %d", i), func(t *testing.T) {
			b, err := (&ADTSHeader{Version: 4, SampleRateIndex: uint8(i), ChannelConfig: 1, FrameLength: 7}).Encode()
			require.NoError(t, err)

			h, err := DecodeHeader(b)
			require.NoError(t, err)
			assert.Equal(t, want, h.SamplingRate())
			assert.Equal(t, "AAC Main", h.(*ADTSHeader).Profile)
		})
	}

	for cfg := 1; cfg <= 7; cfg++ {
		b, err := (&ADTSHeader{Version: 4, SampleRateIndex: 4, ChannelConfig: uint8(cfg), FrameLength: 7}).Encode()
		require.NoError(t, err)

		h, err := DecodeHeader(b)
		require.NoError(t, err)
		want := cfg
		if cfg == 7 {
			want = 8
		}
		assert.Equal(t, want, h.(*ADTSHeader).Channels(), "channel configuration %d", cfg)
	}
}

func TestADTSHeader_Protected(t *testing.T) {
	b, err := (&ADTSHeader{Version: 2, ProfileIndex: 3, SampleRateIndex: 11, ChannelConfig: 1, Protected: true, FrameLength: 9}).Encode()
	require.NoError(t, err)
	assert.Equal(t, byte(0xF8), b[1])

	h, err := DecodeHeader(b)
	require.NoError(t, err)
	assert.True(t, h.CRCProtected())
	assert.Equal(t, "AAC LTP", h.(*ADTSHeader).Profile)
	assert.Equal(t, 8000, h.SamplingRate())
}

func TestMPEGHeader_Duration(t *testing.T) {
	h, err := DecodeHeader([]byte{0xFF, 0xFB, 0x90, 0x64})
	require.NoError(t, err)

	assert.InDelta(t, 1152.0/44100, h.(*MPEGHeader).Duration(1), 1e-12)
	assert.InDelta(t, 2.6122448979, h.(*MPEGHeader).Duration(100), 1e-9)
}

func TestVersionAndChannelModeStrings(t *testing.T) {
	assert.Equal(t, "1", Version1.String())
	assert.Equal(t, "2", Version2.String())
	assert.Equal(t, "2.5", Version25.String())
	assert.Equal(t, "reserved", versionReserved.String())

	assert.Equal(t, "joint_stereo", JointStereo.String())
	assert.Equal(t, "mono", Mono.String())
}
