// endian.go - Big-endian byte reading utilities
package format

import (
	"encoding/binary"
	"fmt"
)

func Be16(b []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(b) {
		return 0, fmt.Errorf("Be16 at %d: %w", off, ErrShortRead)
	}
	return binary.BigEndian.Uint16(b[off : off+2]), nil
}
func Be32(b []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(b) {
		return 0, fmt.Errorf("Be32 at %d: %w", off, ErrShortRead)
	}
	return binary.BigEndian.Uint32(b[off : off+4]), nil
}
func Be64(b []byte, off int) (uint64, error) {
	if off < 0 || off+8 > len(b) {
		return 0, fmt.Errorf("Be64 at %d: %w", off, ErrShortRead)
	}
	return binary.BigEndian.Uint64(b[off : off+8]), nil
}

// BeInt reads an n-byte (1..8) big-endian two's complement integer and
// sign-extends it to 64 bits.
func BeInt(b []byte, off, n int) (int64, error) {
	if n < 1 || n > 8 {
		return 0, fmt.Errorf("BeInt width %d", n)
	}
	if off < 0 || off+n > len(b) {
		return 0, fmt.Errorf("BeInt%d at %d: %w", n*8, off, ErrShortRead)
	}
	var u uint64
	for _, c := range b[off : off+n] {
		u = u<<8 | uint64(c)
	}
	shift := uint(64 - 8*n)
	return int64(u<<shift) >> shift, nil
}
