// Package types provides core data structures for MPEG audio stream metadata.
//
// This package defines the File and AudioInfo types that carry the
// structural parameters extracted from MPEG audio and ADTS streams.
package types

import (
	"io"
)

// File represents a probed audio stream with its extracted parameters.
//
// File is populated by the frame parser through the setter methods in
// sink.go. When opened from disk it keeps the file handle until Close:
//
//	file, err := mpegmeta.Open("song.mp3")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
type File struct {
	Reader_     io.ReaderAt //nolint:revive // Underscore indicates internal/unexported semantics
	Path        string
	Warnings    []Warning
	Audio       AudioInfo
	Format      Format
	Size        int64 // -1 when unknown (one-pass streams)
	StreamStart int64 // offset just past any leading ID3v2 tags; frames start here or later
	HasID3v1    bool
}

// Close releases resources held by the file.
//
// After Close is called, the File should not be used.
func (f *File) Close() error {
	if closer, ok := f.Reader_.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
