package mpeg

import (
	"context"
	"errors"

	"github.com/simonhull/mpegmeta/internal/source"
)

// ErrStopWalk can be returned by a WalkFunc to end Walk early without error.
var ErrStopWalk = errors.New("stop walk")

// Frame is one frame visited by Walk.
type Frame struct {
	Offset int64 // position of the sync word
	Header Header
	Size   int // bytes, header included
}

// WalkFunc is called by Walk for every decoded frame.
type WalkFunc func(Frame) error

// Walk visits every frame of src in order. Unlike Parse it neither reads
// the info tag nor stops early: each decodable header is reported and its
// frame skipped by the size the header declares. Bytes that do not decode
// are stepped over one at a time.
//
// Walk returns nil at the end of the stream or when fn returns ErrStopWalk.
func Walk(ctx context.Context, src source.Source, fn WalkFunc) error {
	err := walk(ctx, src, fn)
	if err == nil || errors.Is(err, ErrStopWalk) || source.IsEndOfStream(err) {
		return nil
	}
	return err
}

func walk(ctx context.Context, src source.Source, fn WalkFunc) error {
	scan := &scanner{src: src}
	var buf [adtsHeaderSize]byte

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := scan.next(); err != nil {
			return err
		}

		pos := src.Position()
		n, err := src.Peek(buf[:], true)
		if err != nil {
			return err
		}
		if n < HeaderSize {
			return source.ErrEndOfStream
		}

		header, err := DecodeHeader(buf[:n])
		if err != nil {
			if err := src.Ignore(1); err != nil {
				return err
			}
			continue
		}

		var size int
		switch h := header.(type) {
		case *MPEGHeader:
			size = h.FrameSize()
		case *ADTSHeader:
			if n < adtsHeaderSize {
				return source.ErrEndOfStream
			}
			h.CompleteFrameLength(buf[HeaderSize:adtsHeaderSize])
			size = h.FrameLength
		}

		if err := fn(Frame{Offset: pos, Header: header, Size: size}); err != nil {
			return err
		}

		// A frame shorter than its own header cannot be skipped by size.
		if size < HeaderSize {
			size = 1
		}
		if err := src.Ignore(int64(size)); err != nil {
			return err
		}
	}
}
