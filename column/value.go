// value.go - Typed column values decoded from records
package column

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind names the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindReserved
	KindBlob
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindInteger:
		return "INTEGER"
	case KindFloat:
		return "FLOAT"
	case KindReserved:
		return "RESERVED"
	case KindBlob:
		return "BLOB"
	case KindText:
		return "TEXT"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a closed set of typed column values: Null, Integer, Float,
// Reserved, Blob and Text. Only this package can add variants, so a type
// switch over the six types is exhaustive.
type Value interface {
	Kind() Kind
	String() string
	sealed()
}

type (
	Null     struct{}
	Integer  int64
	Float    float64
	Reserved SerialType // placeholder codes 10 and 11
	Blob     []byte     // copied out of the page buffer
	Text     string
)

func (Null) Kind() Kind     { return KindNull }
func (Integer) Kind() Kind  { return KindInteger }
func (Float) Kind() Kind    { return KindFloat }
func (Reserved) Kind() Kind { return KindReserved }
func (Blob) Kind() Kind     { return KindBlob }
func (Text) Kind() Kind     { return KindText }

func (Null) sealed()     {}
func (Integer) sealed()  {}
func (Float) sealed()    {}
func (Reserved) sealed() {}
func (Blob) sealed()     {}
func (Text) sealed()     {}

func (Null) String() string      { return "NULL" }
func (v Integer) String() string { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string   { return strconv.FormatFloat(float64(v), 'f', -1, 64) }
func (v Reserved) String() string {
	return fmt.Sprintf("RESERVED(%d)", int64(v))
}
func (v Blob) String() string { return fmt.Sprintf("BLOB(%d)", len(v)) }
func (v Text) String() string { return string(v) }

func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

func (v Reserved) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]int64{"reserved": int64(v)})
}

// IsNull reports whether v is absent or the Null variant.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}
