package mpeg

import (
	"math"
	"strings"

	"github.com/simonhull/mpegmeta/internal/id3"
)

// finalize fills in duration or bitrate from the stream size once the loop
// is done:
//   - a VBR stream with a known duration gets its average bitrate;
//   - a CBR stream without a duration gets one extrapolated from its size.
//
// Nothing happens when the size of the stream is unknown.
func (p *parser) finalize() {
	st := p.st

	size, ok := p.src.Size()
	if !ok || !st.startKnown {
		return
	}

	audioSize := size - st.streamStart
	if p.opts.HasID3v1 {
		audioSize -= id3.V1Size
	}
	if audioSize <= 0 {
		return
	}

	switch {
	case st.durationKnown:
		if strings.HasPrefix(st.codecProfile, "V") && st.duration > 0 {
			p.sink.SetBitrate(8 * float64(audioSize) / st.duration)
		}

	case st.codecProfile == "CBR":
		spf := st.samplesPerFrame
		if spf == 0 && st.header != nil {
			spf = st.header.SamplesPerFrame()
		}
		if st.frameSize <= 0 || spf == 0 || st.sampleRate == 0 {
			return
		}

		frames := math.Round(float64(audioSize) / float64(st.frameSize))
		samples := int64(frames) * int64(spf)
		d := float64(samples) / float64(st.sampleRate)
		p.log.Debug("duration from CBR stream size", "bytes", audioSize, "frames", frames, "seconds", d)
		p.sink.SetNumberOfSamples(samples)
		p.setDuration(d)
	}
}
