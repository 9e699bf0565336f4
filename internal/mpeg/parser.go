// Package mpeg extracts structural audio parameters from MPEG audio
// (Layer I, II and III) and ADTS/AAC elementary streams by walking frame
// headers, without decoding audio.
//
// Parse drives the whole process: it synchronises on frame headers,
// decodes them, reads the Xing/Info/LAME tag of the first frame and decides
// after a few frames whether the duration can be derived cheaply (tag frame
// count, constant bitrate and stream size) or has to be counted up to the
// end of the stream.
package mpeg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/simonhull/mpegmeta/internal/source"
	"github.com/simonhull/mpegmeta/internal/types"
)

// Sink receives the facts established by Parse. A value may be set more
// than once; the last write wins.
type Sink interface {
	SetContainer(string)
	SetCodec(string)
	SetCodecProfile(string)
	SetLossless(bool)
	SetSampleRate(int)
	SetChannels(int)
	SetBitrate(float64)
	SetDuration(seconds float64)
	SetNumberOfSamples(int64)
	SetTool(string)
	AddWarning(types.Warning)
}

// Options configures Parse.
type Options struct {
	// Duration requests a duration even when it has to be counted frame by
	// frame up to the end of the stream.
	Duration bool

	// HasID3v1 excludes a 128-byte ID3v1 trailer from the stream size.
	HasID3v1 bool

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

type parser struct {
	src  source.Source
	sink Sink
	opts Options
	log  *slog.Logger
	scan *scanner
	st   *state
}

// Parse reads frames from src, starting at its current position, and
// publishes what it finds to sink.
//
// Invalid headers and corrupt frames become warnings. Running out of input
// is the normal way for Parse to end and is not an error. Errors returned
// are source faults or ctx.Err().
func Parse(ctx context.Context, src source.Source, sink Sink, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	p := &parser{
		src:  src,
		sink: sink,
		opts: opts,
		log:  log,
		scan: &scanner{src: src},
		st:   newState(),
	}

	sink.SetLossless(false)

	err := p.run(ctx)
	switch {
	case err == nil:
	case source.IsEndOfStream(err):
		p.endOfStream()
	default:
		return err
	}

	p.finalize()
	p.log.Debug("done",
		"frames", p.st.frameCount,
		"payloadSkipped", p.st.skippedBytes,
		"syncSkipped", p.scan.skipped)
	return nil
}

// run loops until enough is known or the stream ends.
func (p *parser) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.sync(); err != nil {
			return err
		}
		stop, err := p.parseFrame()
		if err != nil || stop {
			return err
		}
	}
}

// parseFrame decodes the header at the current position and handles the
// frame. It reports true when parsing should stop.
func (p *parser) parseFrame() (bool, error) {
	pos := p.src.Position()

	var buf [HeaderSize]byte
	if _, err := p.src.Peek(buf[:], false); err != nil {
		return false, err
	}

	header, err := DecodeHeader(buf[:])
	if err != nil {
		p.warn("frame", pos, "parse error: %v", err)
		return false, p.src.Ignore(1)
	}

	if p.st.frameCount == 0 {
		p.st.streamStart = pos
		p.st.startKnown = true
	}
	if err := p.src.Ignore(HeaderSize); err != nil {
		return false, err
	}

	p.sink.SetContainer(header.Container())
	p.sink.SetCodec(header.Codec())
	p.sink.SetLossless(false)
	p.sink.SetSampleRate(header.SamplingRate())
	p.st.sampleRate = header.SamplingRate()

	p.st.frameCount++

	switch h := header.(type) {
	case *ADTSHeader:
		return p.parseADTS(h)
	case *MPEGHeader:
		return p.parseMPEG(h, pos)
	default:
		return false, fmt.Errorf("unexpected header type %T", header)
	}
}

func (p *parser) parseMPEG(h *MPEGHeader, pos int64) (bool, error) {
	st := p.st

	p.sink.SetChannels(h.Channels())
	p.sink.SetBitrate(float64(h.Bitrate))

	p.log.Debug("frame",
		"offset", pos,
		"codec", h.Codec(),
		"version", h.Version.String(),
		"bitrate", h.Bitrate,
		"sampleRate", h.SampleRate,
		"frameCount", st.frameCount)

	st.frameSize = h.FrameSize()
	st.header = h
	st.offset = HeaderSize
	st.recordBitrate(h.Bitrate)

	// The info tag only exists in the first frame.
	if st.frameCount == 1 {
		if err := p.skipSideInfo(h); err != nil {
			return false, err
		}
		return false, p.readInfoTag(h)
	}

	if st.frameCount == cbrProbeFrames {
		cbr := st.constantBitrate()
		if cbr {
			st.samplesPerFrame = h.SamplesPerFrame()
			p.setCodecProfile("CBR")
		}
		if _, sized := p.src.Size(); cbr && sized {
			p.log.Debug("constant bitrate, duration from stream size")
			return true, nil
		}
		if st.durationKnown {
			return true, nil
		}
		if !p.opts.Duration {
			return true, nil
		}
	}

	// From here on every frame is counted up to the end of the stream.
	if p.opts.Duration && st.frameCount == cbrProbeFrames+1 {
		st.samplesPerFrame = h.SamplesPerFrame()
		st.eofDuration = true
	}

	if err := p.skipSideInfo(h); err != nil {
		return false, err
	}
	return false, p.skipFrameData()
}

// skipSideInfo consumes the CRC, if any, and the side information.
func (p *parser) skipSideInfo(h *MPEGHeader) error {
	if h.Protected {
		var crc [2]byte
		if err := p.src.Read(crc[:]); err != nil {
			return err
		}
		p.st.crc = uint16(crc[0])<<8 | uint16(crc[1])
		p.st.offset += 2
	}

	n := h.SideInfoLength()
	if n == 0 {
		return nil
	}
	if err := p.src.Ignore(int64(n)); err != nil {
		return err
	}
	p.st.offset += n
	return nil
}

// skipFrameData consumes what is left of the current frame.
func (p *parser) skipFrameData() error {
	left := p.st.frameSize - p.st.offset
	if left < 0 {
		p.warn("frame", p.src.Position(), "frame %d corrupt: negative frame data left", p.st.frameCount)
		return nil
	}

	p.st.skippedBytes += int64(left)
	p.st.offset += left
	return p.src.Ignore(int64(left))
}

// readInfoTag reads the rest of the first frame and decodes the
// Xing/Info/LAME tag at its start.
func (p *parser) readInfoTag(h *MPEGHeader) error {
	st := p.st
	pos := p.src.Position()

	left := st.frameSize - st.offset
	if left < 0 {
		p.warn("frame", pos, "frame %d corrupt: negative frame data left", st.frameCount)
		return nil
	}

	body := make([]byte, left)
	if err := p.src.Read(body); err != nil {
		return err
	}
	st.offset += left

	tag, err := decodeInfoTag(body)
	if err != nil {
		p.warn("infotag", pos, "%v", err)
	}
	p.log.Debug("info tag", "kind", tag.Kind.String(), "flags", tag.Flags, "frames", tag.NumFrames)

	switch tag.Kind {
	case TagInfo:
		p.setCodecProfile("CBR")
		if err == nil {
			p.applyXing(h, tag)
		}
	case TagXing:
		if err == nil {
			p.applyXing(h, tag)
		}
		p.setCodecProfile(tag.VBRProfile())
	case TagLAME:
		if err == nil {
			p.sink.SetTool("LAME " + tag.LAMEVersion)
		}
	case TagXtra, TagNone:
	}
	return nil
}

func (p *parser) applyXing(h *MPEGHeader, tag *XingInfoTag) {
	if tool := tag.Tool(); tool != "" {
		p.sink.SetTool(tool)
	}
	if tag.HasFrames() {
		d := h.Duration(int64(tag.NumFrames))
		p.log.Debug("duration from Xing header", "frames", tag.NumFrames, "seconds", d)
		p.setDuration(d)
	}
}

func (p *parser) parseADTS(h *ADTSHeader) (bool, error) {
	st := p.st

	var rest [adtsHeaderSize - HeaderSize]byte
	if err := p.src.Read(rest[:]); err != nil {
		return false, err
	}
	h.CompleteFrameLength(rest[:])

	st.adtsDataLength += int64(h.FrameLength)
	st.samplesPerFrame = h.SamplesPerFrame()

	framesPerSec := float64(h.SampleRate) / float64(st.samplesPerFrame)
	bytesPerFrame := float64(st.adtsDataLength) / float64(st.frameCount)
	bitrate := 8 * bytesPerFrame * framesPerSec

	p.setCodecProfile(h.Profile)
	p.sink.SetBitrate(bitrate)
	p.sink.SetChannels(h.Channels())

	p.log.Debug("ADTS frame", "frameCount", st.frameCount, "size", h.FrameLength, "bitrate", bitrate)

	if st.frameCount == cbrProbeFrames {
		if !p.opts.Duration {
			return true, nil
		}
		st.eofDuration = true
	}

	payload := h.FrameLength - adtsHeaderSize
	if payload < 0 {
		p.warn("frame", p.src.Position(), "frame %d corrupt: negative frame data left", st.frameCount)
		return false, nil
	}
	st.skippedBytes += int64(payload)
	return false, p.src.Ignore(int64(payload))
}

// endOfStream publishes the counted duration when counting was armed.
func (p *parser) endOfStream() {
	st := p.st
	if !st.eofDuration || st.sampleRate == 0 {
		return
	}

	samples := st.frameCount * int64(st.samplesPerFrame)
	d := float64(samples) / float64(st.sampleRate)
	p.log.Debug("duration from frame count at end of stream", "frames", st.frameCount, "seconds", d)
	p.sink.SetNumberOfSamples(samples)
	p.setDuration(d)
}

func (p *parser) setCodecProfile(v string) {
	p.st.codecProfile = v
	p.sink.SetCodecProfile(v)
}

func (p *parser) setDuration(seconds float64) {
	p.st.duration = seconds
	p.st.durationKnown = true
	p.sink.SetDuration(seconds)
}

func (p *parser) warn(stage string, offset int64, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.log.Debug("warning", "stage", stage, "offset", offset, "message", msg)
	p.sink.AddWarning(types.Warning{Stage: stage, Message: msg, Offset: offset})
}
