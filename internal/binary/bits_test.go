package binary

import "testing"

func TestBits(t *testing.T) {
	// MPEG-1 Layer III, 128 kbps, 44.1 kHz, joint stereo, no CRC.
	header := []byte{0xFF, 0xFB, 0x90, 0x64}

	tests := []struct {
		name               string
		byteOff, bitOff, n int
		want               uint32
	}{
		{"sync high byte", 0, 0, 8, 0xFF},
		{"sync 11 bits", 0, 0, 11, 0x7FF},
		{"version index", 1, 3, 2, 3},
		{"layer code", 1, 5, 2, 1},
		{"bitrate index", 2, 0, 4, 9},
		{"sample rate index", 2, 4, 2, 0},
		{"channel mode", 3, 0, 2, 1},
		{"mode extension", 3, 2, 2, 2},
		{"emphasis", 3, 6, 2, 0},
		{"bit offset past byte", 0, 13, 2, 1},
		{"span two bytes", 1, 6, 4, 0xE},
		{"full 16 bits", 2, 0, 16, 0x9064},
		{"16 bits unaligned", 0, 4, 16, 0xFFB9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bits(header, tt.byteOff, tt.bitOff, tt.n)
			if got != tt.want {
				t.Errorf("Bits(%d, %d, %d) = 0x%x, want 0x%x",
					tt.byteOff, tt.bitOff, tt.n, got, tt.want)
			}
		})
	}
}

func TestBits_ADTSFrameLength(t *testing.T) {
	// 13-bit frame length 0x0973 split over bytes 3..5.
	buf := []byte{0xFF, 0xF1, 0x50, 0x81, 0x2E, 0x7F}

	high := Bits(buf, 3, 6, 2) << 11
	low := Bits(buf, 4, 0, 11)
	if got := high | low; got != 0x973 {
		t.Errorf("frame length = 0x%x, want 0x973", got)
	}
}

func TestBitSet(t *testing.T) {
	buf := []byte{0x80, 0x01}

	if !BitSet(buf, 0, 0) {
		t.Error("bit 0 of byte 0 should be set")
	}
	if BitSet(buf, 0, 1) {
		t.Error("bit 1 of byte 0 should be clear")
	}
	if !BitSet(buf, 1, 7) {
		t.Error("bit 7 of byte 1 should be set")
	}
	if !BitSet(buf, 0, 15) {
		t.Error("bit 15 counted from byte 0 should be set")
	}
}
