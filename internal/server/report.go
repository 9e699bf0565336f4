package server

import (
	"github.com/simonhull/mpegmeta/internal/types"
)

// Report is the JSON form of a probed stream, shared by the HTTP service
// and the CLI.
type Report struct {
	Path            string   `json:"path,omitempty"`
	Format          string   `json:"format"`
	Container       string   `json:"container"`
	Codec           string   `json:"codec"`
	CodecProfile    string   `json:"codec_profile,omitempty"`
	Tool            string   `json:"tool,omitempty"`
	DurationSeconds float64  `json:"duration_seconds,omitempty"`
	Samples         int64    `json:"samples,omitempty"`
	SampleRate      int      `json:"sample_rate"`
	Channels        int      `json:"channels"`
	Bitrate         int      `json:"bitrate"`
	VBR             bool     `json:"vbr"`
	Lossless        bool     `json:"lossless"`
	Warnings        []string `json:"warnings,omitempty"`
}

// NewReport converts a parsed file.
func NewReport(f *types.File) Report {
	a := f.Audio
	r := Report{
		Path:            f.Path,
		Format:          f.Format.String(),
		Container:       a.Container,
		Codec:           a.Codec,
		CodecProfile:    a.CodecProfile,
		Tool:            a.Tool,
		DurationSeconds: a.Duration.Seconds(),
		Samples:         a.NumberOfSamples,
		SampleRate:      a.SampleRate,
		Channels:        a.Channels,
		Bitrate:         a.Bitrate,
		VBR:             a.VBR,
		Lossless:        a.Lossless,
	}
	for _, w := range f.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r
}
