package binary

// Bits returns the n-bit unsigned value starting at bit bitOff of
// buf[byteOff], where bit 0 is the most significant bit of the byte.
// The field may span into the following bytes. n must be at most 16.
//
// Callers are responsible for passing a slice long enough to hold the
// field; Bits does not check bounds.
//
// Example: the 2-bit layer code of an MPEG frame header is
//
//	layer := binary.Bits(header, 1, 5, 2)
func Bits(buf []byte, byteOff, bitOff, n int) uint32 {
	byteOff += bitOff / 8
	bitOff %= 8

	var v uint32
	for n > 0 {
		avail := 8 - bitOff
		b := uint32(buf[byteOff]) & (0xFF >> bitOff)
		if n < avail {
			return v<<n | b>>(avail-n)
		}
		v = v<<avail | b
		n -= avail
		byteOff++
		bitOff = 0
	}
	return v
}

// BitSet reports whether bit bitOff of buf[byteOff] is set, using the same
// bit order as Bits.
func BitSet(buf []byte, byteOff, bitOff int) bool {
	return Bits(buf, byteOff, bitOff, 1) == 1
}
