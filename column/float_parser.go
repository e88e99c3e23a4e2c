// float_parser.go - Parser for the 64-bit float serial type
package column

type FloatParser struct {
	BaseParser
}

func (p *FloatParser) Parse(input []byte, offset int, st SerialType) (Value, int, error) {
	if st != SerialFloat64 {
		return nil, 0, errNotHandled(st, "float")
	}
	v, err := p.readFloat64(input, offset)
	if err != nil {
		return nil, 0, err
	}
	return Float(v), 8, nil
}

func (p *FloatParser) Skip(input []byte, offset int, st SerialType) (int, error) {
	return p.skip(input, offset, st)
}
