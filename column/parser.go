// parser.go - Column parser interface and base implementation
package column

import (
	"math"

	"github.com/wilhasse/go-sqlite/format"
)

// Parser decodes one class of serial types from a record body
type Parser interface {
	// Parse reads the value of serial type st stored at input[offset:]
	Parse(input []byte, offset int, st SerialType) (value Value, bytesRead int, err error)

	// Skip returns the body width of st without decoding it
	Skip(input []byte, offset int, st SerialType) (bytesRead int, err error)
}

// BaseParser provides common functionality for column parsers
type BaseParser struct{}

// readBytes returns a view of length bytes at offset
func (p *BaseParser) readBytes(input []byte, offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > len(input) || offset+length < offset {
		return nil, format.Malformed("value of %d bytes at offset %d runs past the record (%d bytes)", length, offset, len(input))
	}
	return input[offset : offset+length], nil
}

// readInt reads an n-byte big-endian two's complement integer
func (p *BaseParser) readInt(input []byte, offset, n int) (int64, error) {
	v, err := format.BeInt(input, offset, n)
	if err != nil {
		return 0, format.Malformed("%d-byte integer at offset %d: %v", n, offset, err)
	}
	return v, nil
}

// readFloat64 reads an IEEE-754 big-endian double
func (p *BaseParser) readFloat64(input []byte, offset int) (float64, error) {
	u, err := format.Be64(input, offset)
	if err != nil {
		return 0, format.Malformed("float at offset %d: %v", offset, err)
	}
	return math.Float64frombits(u), nil
}

// skip checks that st's body fits and returns its width
func (p *BaseParser) skip(input []byte, offset int, st SerialType) (int, error) {
	w, err := st.Width()
	if err != nil {
		return 0, err
	}
	if _, err := p.readBytes(input, offset, w); err != nil {
		return 0, err
	}
	return w, nil
}
