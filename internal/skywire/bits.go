package skywire

// bytesToBits unpacks each byte of in, LSB first, into one 0/1 byte
// per bit: spec.md's "little-endian bit-expansion of the packed
// telemetry record" (spec.md §4.B), per the bit order
// original_source/src/7_main_integration.c:235-237 actually uses
// (`bit_idx = i % 8; info_bits[i] = (frame_bytes[byte_idx] >> bit_idx)
// & 0x01`). This is a different bit order from the ASM's, which
// spec.md separately and explicitly mandates MSB-first (asm.go);
// those two bit streams are never mixed on the wire.
func bytesToBits(in []byte) []byte {
	out := make([]byte, len(in)*8)
	for i, b := range in {
		for j := 0; j < 8; j++ {
			out[i*8+j] = (b >> j) & 1
		}
	}
	return out
}

// bitsToBytes packs bits (one 0/1 byte per bit, LSB first) into bytes,
// the inverse of bytesToBits. len(bits) must be a multiple of 8.
func bitsToBytes(bits []byte) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		var b byte
		for j := 7; j >= 0; j-- {
			b = (b << 1) | (bits[i*8+j] & 1)
		}
		out[i] = b
	}
	return out
}
