// int_parser.go - Parser for integer serial types
package column

// IntParser handles serial types 1-6 and the constants 8 and 9
type IntParser struct {
	BaseParser
}

// Parse parses an integer value; constants consume no bytes
func (p *IntParser) Parse(input []byte, offset int, st SerialType) (Value, int, error) {
	switch st {
	case SerialZero:
		return Integer(0), 0, nil
	case SerialOne:
		return Integer(1), 0, nil
	case SerialInt8, SerialInt16, SerialInt24, SerialInt32, SerialInt48, SerialInt64:
		n := intWidths[st]
		v, err := p.readInt(input, offset, n)
		if err != nil {
			return nil, 0, err
		}
		return Integer(v), n, nil
	default:
		return nil, 0, errNotHandled(st, "integer")
	}
}

// Skip skips an integer value without parsing
func (p *IntParser) Skip(input []byte, offset int, st SerialType) (int, error) {
	return p.skip(input, offset, st)
}
