package mpeg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simonhull/mpegmeta/internal/binary"
	"github.com/simonhull/mpegmeta/internal/source"
)

// MPEG-1 Layer III, 44.1 kHz, stereo, no CRC.
func mp3Fields(bitrateIndex uint8) MPEGFields {
	return MPEGFields{
		VersionIndex: uint8(Version1),
		LayerCode:    1,
		BitrateIndex: bitrateIndex,
	}
}

const (
	kbps128 = 9  // 417-byte frames at 44.1 kHz
	kbps160 = 10 // 522-byte frames at 44.1 kHz
)

// mpegFrame returns one frame: header, then zeros. When tag is non-nil it
// follows the side information.
func mpegFrame(t *testing.T, f MPEGFields, tag []byte) []byte {
	t.Helper()

	head, err := f.Encode()
	require.NoError(t, err)
	h, err := DecodeHeader(head)
	require.NoError(t, err)
	mh := h.(*MPEGHeader)

	frame := make([]byte, mh.FrameSize())
	copy(frame, head)
	if tag != nil {
		copy(frame[HeaderSize+mh.SideInfoLength():], tag)
	}
	return frame
}

// mpegStream concatenates one tag-less frame per bitrate index.
func mpegStream(t *testing.T, bitrateIndexes ...uint8) []byte {
	t.Helper()

	var buf bytes.Buffer
	for _, idx := range bitrateIndexes {
		buf.Write(mpegFrame(t, mp3Fields(idx), nil))
	}
	return buf.Bytes()
}

func repeat(idx uint8, n int) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		out[i] = idx
	}
	return out
}

// adtsStream returns n AAC LC, 44.1 kHz, stereo frames of frameLength bytes.
func adtsStream(t *testing.T, n, frameLength int) []byte {
	t.Helper()

	h := &ADTSHeader{
		Version:         4,
		ProfileIndex:    1,
		SampleRateIndex: 4,
		ChannelConfig:   2,
		FrameLength:     frameLength,
		BufferFullness:  0x7FF,
	}
	head, err := h.Encode()
	require.NoError(t, err)
	require.Len(t, head, adtsHeaderSize)

	var buf bytes.Buffer
	for range n {
		frame := make([]byte, frameLength)
		copy(frame, head)
		buf.Write(frame)
	}
	return buf.Bytes()
}

func infoTag(t *testing.T, tag *XingInfoTag) []byte {
	t.Helper()

	b, err := tag.Encode()
	require.NoError(t, err)
	return b
}

func sizedSource(data []byte) source.Source {
	sr := binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.mp3")
	return source.FromReaderAt(sr, 0)
}

func streamSource(data []byte) source.Source {
	return source.FromReader(bytes.NewReader(data), -1)
}
