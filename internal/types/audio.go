package types

import (
	"fmt"
	"strings"
	"time"
)

// AudioInfo represents the structural audio properties of an elementary
// stream.
//
// Fields are filled in as the frame parser discovers them; a field left at
// its zero value was not determined.
type AudioInfo struct {
	Container       string // "MPEG", "ADTS/MPEG-4", ...
	Codec           string // "MP1", "MP2", "MP3", "AAC"
	CodecProfile    string // "CBR", "V2", "VBR", "AAC LC", ...
	Tool            string // Encoder, e.g. "LAME 3.100"
	Duration        time.Duration
	NumberOfSamples int64
	SampleRate      int
	Channels        int
	Bitrate         int // bits per second
	Lossless        bool
	VBR             bool
}

// String returns a human-readable representation of the audio info.
// Example output: "MP3 44.1kHz stereo 128kbps CBR".
func (a AudioInfo) String() string {
	parts := []string{a.Codec}

	if a.SampleRate > 0 {
		parts = append(parts, fmt.Sprintf("%.1fkHz", float64(a.SampleRate)/1000))
	}

	parts = append(parts, channelDescription(a.Channels))

	if a.Bitrate > 0 {
		parts = append(parts, fmt.Sprintf("%dkbps", a.Bitrate/1000))
	}
	if a.CodecProfile != "" {
		parts = append(parts, a.CodecProfile)
	}

	return join(parts, " ")
}

// channelDescription returns a human-readable channel description.
func channelDescription(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "mono"
	case 2:
		return "stereo"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

// join concatenates strings with a separator, skipping empty strings.
func join(parts []string, sep string) string {
	nonEmpty := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, sep)
}

// FullCodecName returns the codec name with its profile, e.g. "AAC (AAC LC)".
func (a AudioInfo) FullCodecName() string {
	if a.CodecProfile != "" && a.CodecProfile != a.Codec {
		return fmt.Sprintf("%s (%s)", a.Codec, a.CodecProfile)
	}
	return a.Codec
}
