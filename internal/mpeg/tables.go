package mpeg

// Version is the MPEG audio version of a classic frame header.
type Version int

// MPEG audio versions.
const (
	Version25 Version = iota // MPEG-2.5 (unofficial low sample rate extension)
	versionReserved
	Version2
	Version1
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "1"
	case Version2:
		return "2"
	case Version25:
		return "2.5"
	default:
		return "reserved"
	}
}

// ChannelMode is the channel mode of a classic frame header.
type ChannelMode int

// Channel modes, in header bit order.
const (
	Stereo ChannelMode = iota
	JointStereo
	DualChannel
	Mono
)

var channelModeNames = [4]string{"stereo", "joint_stereo", "dual_channel", "mono"}

func (m ChannelMode) String() string {
	return channelModeNames[m&3]
}

// layerFromCode maps the 2-bit layer code to the layer number; 0 is reserved.
var layerFromCode = [4]int{0, 3, 2, 1}

// bitrateColumn selects the bitrate table column for a version and layer.
// MPEG-2.5 shares the MPEG-2 columns.
func bitrateColumn(v Version, layer int) (int, bool) {
	switch {
	case layer < 1 || layer > 3:
		return 0, false
	case v == Version1:
		return layer - 1, true // V1L1, V1L2, V1L3
	case v == Version2 || v == Version25:
		if layer == 1 {
			return 3, true // V2L1
		}
		return 4, true // V2L2, V2L3
	default:
		return 0, false
	}
}

// bitrateKbps is indexed by [bitrateIndex][column]. Rows 0 (free) and 15
// (reserved) are zero and rejected.
var bitrateKbps = [16][5]int{
	{},
	{32, 32, 32, 32, 8},
	{64, 48, 40, 48, 16},
	{96, 56, 48, 56, 24},
	{128, 64, 56, 64, 32},
	{160, 80, 64, 80, 40},
	{192, 96, 80, 96, 48},
	{224, 112, 96, 112, 56},
	{256, 128, 112, 128, 64},
	{288, 160, 128, 144, 80},
	{320, 192, 160, 160, 96},
	{352, 224, 192, 176, 112},
	{384, 256, 224, 192, 128},
	{416, 320, 256, 224, 144},
	{448, 384, 320, 256, 160},
	{},
}

// lookupBitrate returns the bitrate in bit/s.
func lookupBitrate(v Version, layer int, index uint32) (int, bool) {
	col, ok := bitrateColumn(v, layer)
	if !ok || index == 0 || index >= 15 {
		return 0, false
	}
	return bitrateKbps[index][col] * 1000, true
}

var sampleRates = [4][3]int{
	Version25: {11025, 12000, 8000},
	Version2:  {22050, 24000, 16000},
	Version1:  {44100, 48000, 32000},
}

// lookupSampleRate returns the sample rate in Hz. Index 3 is reserved.
func lookupSampleRate(v Version, index uint32) (int, bool) {
	if v == versionReserved || index > 2 {
		return 0, false
	}
	return sampleRates[v][index], true
}

// samplesPerFrameTable is indexed by [MPEG-1 ? 0 : 1][layer].
var samplesPerFrameTable = [2][4]int{
	{0, 384, 1152, 1152},
	{0, 384, 1152, 576},
}

// adtsProfiles names the Audio Object Types reachable from the 2-bit
// ADTS profile field (object type minus one).
var adtsProfiles = [4]string{"AAC Main", "AAC LC", "AAC SSR", "AAC LTP"}

// adtsSampleRates is indexed by the 4-bit sampling frequency index. Zero
// entries are reserved; index 15 signals an explicit rate, which ADTS
// cannot carry.
var adtsSampleRates = [16]int{
	96000, 88200, 64000, 48000, 44100, 32000, 24000, 22050,
	16000, 12000, 11025, 8000, 7350, 0, 0, 0,
}

func lookupADTSSampleRate(index uint32) (int, bool) {
	if index > 15 || adtsSampleRates[index] == 0 {
		return 0, false
	}
	return adtsSampleRates[index], true
}

// Channel names used in ADTS channel configurations.
const (
	FrontCenter = "front-center"
	FrontLeft   = "front-left"
	FrontRight  = "front-right"
	SideLeft    = "side-left"
	SideRight   = "side-right"
	BackLeft    = "back-left"
	BackRight   = "back-right"
	BackCenter  = "back-center"
	LFE         = "LFE-channel"
)

// adtsChannelConfigs is indexed by the 3-bit channel configuration. Index 0
// defers the layout to the payload and is not supported.
var adtsChannelConfigs = [8][]string{
	nil,
	{FrontCenter},
	{FrontLeft, FrontRight},
	{FrontCenter, FrontLeft, FrontRight},
	{FrontCenter, FrontLeft, FrontRight, BackCenter},
	{FrontCenter, FrontLeft, FrontRight, BackLeft, BackRight},
	{FrontCenter, FrontLeft, FrontRight, BackLeft, BackRight, LFE},
	{FrontCenter, FrontLeft, FrontRight, SideLeft, SideRight, BackLeft, BackRight, LFE},
}

func lookupADTSChannels(index uint32) ([]string, bool) {
	if index > 7 || adtsChannelConfigs[index] == nil {
		return nil, false
	}
	return adtsChannelConfigs[index], true
}
