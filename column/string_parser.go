// string_parser.go - Parser for text and blob serial types
package column

import (
	"unicode/utf8"

	"github.com/wilhasse/go-sqlite/format"
)

// StringParser handles TEXT (odd codes >= 13) and BLOB (even codes >= 12)
type StringParser struct {
	BaseParser
}

// Parse copies the value out of the page buffer so it outlives the page.
// Text must be valid UTF-8.
func (p *StringParser) Parse(input []byte, offset int, st SerialType) (Value, int, error) {
	if !st.IsText() && !st.IsBlob() {
		return nil, 0, errNotHandled(st, "text/blob")
	}
	n, err := st.Width()
	if err != nil {
		return nil, 0, err
	}
	data, err := p.readBytes(input, offset, n)
	if err != nil {
		return nil, 0, err
	}
	if st.IsBlob() {
		return Blob(append([]byte{}, data...)), n, nil
	}
	if !utf8.Valid(data) {
		return nil, 0, format.Malformed("invalid UTF-8 in %d-byte text at offset %d", n, offset)
	}
	return Text(string(data)), n, nil
}

// Skip skips a text or blob value
func (p *StringParser) Skip(input []byte, offset int, st SerialType) (int, error) {
	return p.skip(input, offset, st)
}
