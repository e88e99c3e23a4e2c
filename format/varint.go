// varint.go - Variable-length integer codec
package format

// MaxVarintLen is the longest varint encoding. Nine bytes of 7 bits each
// carry 63 bits.
const MaxVarintLen = 9

// GetVarint decodes a big-endian base-128 varint starting at b[off] and
// returns the value and the number of bytes consumed.
//
// Every byte contributes its low 7 bits and decoding continues while the
// high bit is set, for at most nine bytes. Decoding stops at the end of b,
// so it never fails: an empty or out-of-range offset yields (0, 0).
func GetVarint(b []byte, off int) (int64, int) {
	if off < 0 || off >= len(b) {
		return 0, 0
	}
	var v int64
	n := 0
	for i := off; i < len(b) && n < MaxVarintLen; i++ {
		c := b[i]
		n++
		v = v<<7 | int64(c&0x7f)
		if c&0x80 == 0 {
			break
		}
	}
	return v, n
}

// PutVarint encodes the low 63 bits of v into p, which must hold at least
// VarintLen(v) bytes, and returns the number of bytes written.
func PutVarint(p []byte, v uint64) int {
	v &= 1<<63 - 1
	n := VarintLen(v)
	for i := n - 1; i >= 0; i-- {
		c := byte(v & 0x7f)
		if i != n-1 {
			c |= 0x80
		}
		p[i] = c
		v >>= 7
	}
	return n
}

// AppendVarint appends the encoding of v to dst.
func AppendVarint(dst []byte, v uint64) []byte {
	var buf [MaxVarintLen]byte
	n := PutVarint(buf[:], v)
	return append(dst, buf[:n]...)
}

// VarintLen returns the number of bytes required to encode the low 63 bits
// of v.
func VarintLen(v uint64) int {
	n := 1
	for v &= 1<<63 - 1; v > 0x7f && n < MaxVarintLen; v >>= 7 {
		n++
	}
	return n
}
