// serial.go - Record serial type codes
package column

import (
	"fmt"

	"github.com/wilhasse/go-sqlite/format"
)

// SerialType is the per-column tag in a record header. It selects the
// value variant and, for blobs and text, the byte length.
type SerialType int64

const (
	SerialNull    SerialType = 0
	SerialInt8    SerialType = 1
	SerialInt16   SerialType = 2
	SerialInt24   SerialType = 3
	SerialInt32   SerialType = 4
	SerialInt48   SerialType = 5
	SerialInt64   SerialType = 6
	SerialFloat64 SerialType = 7
	SerialZero    SerialType = 8
	SerialOne     SerialType = 9
	SerialResv10  SerialType = 10
	SerialResv11  SerialType = 11
)

var intWidths = [...]int{SerialInt8: 1, SerialInt16: 2, SerialInt24: 3, SerialInt32: 4, SerialInt48: 6, SerialInt64: 8}

func (t SerialType) IsReserved() bool { return t == SerialResv10 || t == SerialResv11 }
func (t SerialType) IsBlob() bool     { return t >= 12 && t%2 == 0 }
func (t SerialType) IsText() bool     { return t >= 13 && t%2 == 1 }

// Kind returns the variant this serial type decodes to.
func (t SerialType) Kind() Kind {
	switch {
	case t == SerialNull:
		return KindNull
	case t >= SerialInt8 && t <= SerialInt64, t == SerialZero, t == SerialOne:
		return KindInteger
	case t == SerialFloat64:
		return KindFloat
	case t.IsReserved():
		return KindReserved
	case t.IsBlob():
		return KindBlob
	default:
		return KindText
	}
}

// Width returns the number of body bytes a value of this type occupies.
// Reserved and negative codes have no width.
func (t SerialType) Width() (int, error) {
	switch {
	case t < 0:
		return 0, format.Malformed("invalid serial type %d", int64(t))
	case t == SerialNull, t == SerialZero, t == SerialOne:
		return 0, nil
	case t <= SerialInt64:
		return intWidths[t], nil
	case t == SerialFloat64:
		return 8, nil
	case t.IsReserved():
		return 0, format.Malformed("reserved serial type %d", int64(t))
	case t.IsBlob():
		return int((t - 12) / 2), nil
	default:
		return int((t - 13) / 2), nil
	}
}

func (t SerialType) String() string {
	switch k := t.Kind(); k {
	case KindBlob, KindText:
		w, _ := t.Width()
		return fmt.Sprintf("%s(%d)", k, w)
	default:
		return fmt.Sprintf("%s#%d", k, int64(t))
	}
}
