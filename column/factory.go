// factory.go - Factory for getting appropriate column parser
package column

import (
	"github.com/wilhasse/go-sqlite/format"
)

var (
	nullParser   = &NullParser{}
	intParser    = &IntParser{}
	floatParser  = &FloatParser{}
	stringParser = &StringParser{}
)

// NullParser handles serial type 0
type NullParser struct {
	BaseParser
}

func (p *NullParser) Parse(input []byte, offset int, st SerialType) (Value, int, error) {
	if st != SerialNull {
		return nil, 0, errNotHandled(st, "null")
	}
	return Null{}, 0, nil
}

func (p *NullParser) Skip(input []byte, offset int, st SerialType) (int, error) { return 0, nil }

// GetParser returns the parser for a serial type, or nil for reserved and
// invalid codes.
func GetParser(st SerialType) Parser {
	switch st.Kind() {
	case KindNull:
		return nullParser
	case KindInteger:
		return intParser
	case KindFloat:
		return floatParser
	case KindBlob, KindText:
		if st < 12 {
			return nil
		}
		return stringParser
	default:
		return nil
	}
}

// ParseColumn decodes one value of serial type st at input[offset:]
func ParseColumn(input []byte, offset int, st SerialType) (Value, int, error) {
	parser := GetParser(st)
	if parser == nil {
		_, err := st.Width()
		return nil, 0, err
	}
	return parser.Parse(input, offset, st)
}

// SkipColumn skips a value without decoding it
func SkipColumn(input []byte, offset int, st SerialType) (int, error) {
	parser := GetParser(st)
	if parser == nil {
		_, err := st.Width()
		return 0, err
	}
	return parser.Skip(input, offset, st)
}

func errNotHandled(st SerialType, class string) error {
	return format.Malformed("serial type %d is not a %s type", int64(st), class)
}
