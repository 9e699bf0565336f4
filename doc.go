// Package mpegmeta reads the audio parameters of MPEG audio (Layer I, II
// and III) and ADTS/AAC streams without decoding them.
//
// mpegmeta walks frame headers: it synchronises on the 11-bit frame sync,
// decodes the header, reads the Xing/Info/LAME tag of the first frame and
// reports container, codec, profile, sample rate, channels, bitrate,
// duration and encoder. Corrupt or truncated input yields partial results
// and warnings rather than errors.
//
// # Quick Start
//
//	file, err := mpegmeta.Open("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	fmt.Println(file.Audio) // MP3 44.1kHz stereo 128kbps CBR
//	fmt.Printf("Duration: %s\n", file.Audio.Duration)
//
// # Duration
//
// Duration comes from the cheapest source available:
//
//   - the frame count of a Xing or Info tag;
//   - the stream size divided by the frame size, for constant bitrate
//     streams whose size is known;
//   - counting every frame to the end of the stream, only with
//     WithDuration.
//
// Without WithDuration a variable bitrate stream with no tag has no
// duration; parsing stops after three frames.
//
// # Streams
//
// Parse reads from an io.Reader in one pass, for example an HTTP request
// body. Format detection and ID3v1 trailer handling need random access
// and are skipped:
//
//	file, err := mpegmeta.Parse(ctx, resp.Body,
//	    mpegmeta.WithStreamSize(resp.ContentLength),
//	)
//
// # Error Handling
//
// mpegmeta distinguishes between fatal errors and warnings:
//
//   - Fatal errors prevent parsing entirely (file not found, unsupported
//     format, read failures)
//   - Warnings indicate non-fatal issues (invalid frame headers, corrupt
//     frames, a truncated info tag)
//
// Read failures wrap ErrReadFailure. WithStrictParsing turns the first
// warning into a *CorruptedFileError.
package mpegmeta
