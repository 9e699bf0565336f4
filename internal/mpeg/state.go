package mpeg

// cbrProbeFrames is the number of leading bitrates compared to detect CBR.
const cbrProbeFrames = 3

// state is the mutable bookkeeping of one Parse call. It is owned by the
// parser and never shared.
type state struct {
	frameCount     int64 // frames decoded since the last resync
	syncFrameCount int64 // frameCount at the previous sync, -1 before the first
	skippedBytes   int64 // frame payload skipped
	adtsDataLength int64 // sum of ADTS frame lengths

	bitrates        []int // first cbrProbeFrames bitrates
	frameSize       int   // size of the current MPEG frame in bytes
	offset          int   // bytes of the current frame already consumed
	samplesPerFrame int
	crc             uint16

	// eofDuration makes the end of stream publish frameCount * samplesPerFrame.
	eofDuration bool

	streamStart int64
	startKnown  bool

	header *MPEGHeader // most recent MPEG header

	// Published values the parser needs to read back.
	sampleRate    int
	codecProfile  string
	duration      float64
	durationKnown bool
}

func newState() *state {
	return &state{
		syncFrameCount: -1,
		bitrates:       make([]int, 0, cbrProbeFrames),
	}
}

// resync restarts frame counting after a spurious sync.
func (st *state) resync() {
	st.frameCount = 0
	st.frameSize = 0
	st.bitrates = st.bitrates[:0]
}

func (st *state) recordBitrate(bitrate int) {
	if len(st.bitrates) < cbrProbeFrames {
		st.bitrates = append(st.bitrates, bitrate)
	}
}

// constantBitrate reports whether every recorded bitrate is the same.
func (st *state) constantBitrate() bool {
	for _, b := range st.bitrates {
		if b != st.bitrates[0] {
			return false
		}
	}
	return len(st.bitrates) > 0
}
