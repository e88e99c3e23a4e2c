// errors.go - Decoding error kinds
package format

import (
	"errors"
	"fmt"
)

// Sentinel errors for decoding failures. Every structured error below
// unwraps to one of these so callers can branch with errors.Is.
var (
	ErrIO                      = errors.New("i/o error")
	ErrShortRead               = errors.New("short read")
	ErrNotDatabase             = errors.New("file is not a database")
	ErrInvalidPageSize         = errors.New("invalid page size")
	ErrUnsupportedTextEncoding = errors.New("unsupported text encoding")
	ErrUnsupportedPageType     = errors.New("unsupported page type")
	ErrMalformedRecord         = errors.New("malformed record")
	ErrUnsupportedOverflow     = errors.New("overflow pages not supported")
)

// IOError reports a failed read of the underlying file.
type IOError struct {
	Op   string // "read header", "read page"
	Page int    // page index, -1 when not page related
	Err  error
}

func (e *IOError) Error() string {
	if e.Page >= 0 {
		return fmt.Sprintf("%s %d: %v", e.Op, e.Page, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

// PageTypeError reports a page whose type byte cannot be decoded here.
type PageTypeError struct {
	Page int
	Type PageType
}

func (e *PageTypeError) Error() string {
	return fmt.Sprintf("page %d: unsupported page type 0x%02x (%s)", e.Page, uint8(e.Type), e.Type)
}

func (e *PageTypeError) Unwrap() error { return ErrUnsupportedPageType }

// RecordError locates a record that failed to decode.
// Page and Cell are -1 when the record was decoded outside a page.
type RecordError struct {
	Page   int
	Cell   int
	Reason string
	Err    error // ErrMalformedRecord or ErrUnsupportedOverflow
}

func (e *RecordError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("record: %s", e.Reason)
	}
	return fmt.Sprintf("page %d cell %d: %s", e.Page, e.Cell, e.Reason)
}

func (e *RecordError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMalformedRecord
}

// Malformed builds a RecordError for a corrupt record that is not yet tied
// to a page position.
func Malformed(format string, args ...interface{}) *RecordError {
	return &RecordError{Page: -1, Cell: -1, Reason: fmt.Sprintf(format, args...), Err: ErrMalformedRecord}
}
