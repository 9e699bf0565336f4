package types

import (
	"math"
	"strings"
	"time"
)

// The setters below let the frame parser publish into a File. Each call
// overwrites the previous value.

// SetContainer sets the container name.
func (f *File) SetContainer(v string) { f.Audio.Container = v }

// SetCodec sets the codec name.
func (f *File) SetCodec(v string) { f.Audio.Codec = v }

// SetCodecProfile sets the codec profile and derives the VBR flag from it.
func (f *File) SetCodecProfile(v string) {
	f.Audio.CodecProfile = v
	f.Audio.VBR = strings.HasPrefix(v, "V")
}

// SetLossless sets the lossless flag.
func (f *File) SetLossless(v bool) { f.Audio.Lossless = v }

// SetSampleRate sets the sample rate in Hz.
func (f *File) SetSampleRate(v int) { f.Audio.SampleRate = v }

// SetChannels sets the channel count.
func (f *File) SetChannels(v int) { f.Audio.Channels = v }

// SetBitrate sets the bitrate in bits per second, rounded to an integer.
func (f *File) SetBitrate(v float64) { f.Audio.Bitrate = int(math.Round(v)) }

// SetDuration sets the duration from seconds.
func (f *File) SetDuration(seconds float64) {
	f.Audio.Duration = time.Duration(seconds * float64(time.Second))
}

// SetNumberOfSamples sets the sample count per channel.
func (f *File) SetNumberOfSamples(v int64) { f.Audio.NumberOfSamples = v }

// SetTool sets the encoder tool name.
func (f *File) SetTool(v string) { f.Audio.Tool = v }

// AddWarning records a non-fatal parse issue.
func (f *File) AddWarning(w Warning) { f.Warnings = append(f.Warnings, w) }
