// record.go - Record decoding from table leaf cells
package record

import (
	"errors"
	"fmt"

	"github.com/wilhasse/go-sqlite/column"
	"github.com/wilhasse/go-sqlite/format"
	"github.com/wilhasse/go-sqlite/page"
)

// Record is one decoded row.
type Record struct {
	RowID  int64
	Header Header
	Values []column.Value // in column order
}

// Value returns the i-th column. Rows written before a column was added
// carry fewer values; the missing ones read as Null.
func (r *Record) Value(i int) column.Value {
	if i < 0 || i >= len(r.Values) {
		return column.Null{}
	}
	return r.Values[i]
}

// Decode decodes the record starting at cell[0]. The cell slice may extend
// past the record; decoding stops at the end of the body.
func Decode(cell []byte) (*Record, error) {
	h, err := ParseHeader(cell)
	if err != nil {
		return nil, err
	}

	values := make([]column.Value, 0, len(h.SerialTypes))
	off := h.BodyOffset
	for i, st := range h.SerialTypes {
		v, n, err := column.ParseColumn(cell, off, st)
		if err != nil {
			var re *format.RecordError
			if errors.As(err, &re) {
				re.Reason = fmt.Sprintf("column %d: %s", i, re.Reason)
			}
			return nil, err
		}
		values = append(values, v)
		off += n
	}

	if spanned := int64(off - h.PrefixLen); spanned != h.PayloadLen {
		return nil, format.Malformed("payload length %d but record spans %d bytes", h.PayloadLen, spanned)
	}
	return &Record{RowID: h.RowID, Header: h, Values: values}, nil
}

// DecodeCell decodes the i-th cell of a leaf table page. Payloads that do
// not fit on the page are rejected rather than read from overflow pages.
func DecodeCell(p *page.Page, i int) (*Record, error) {
	if !p.IsTable() {
		return nil, &format.PageTypeError{Page: p.Index, Type: p.Type}
	}
	cell, err := p.Cell(i)
	if err != nil {
		return nil, err
	}
	if payload, _ := format.GetVarint(cell, 0); payload > int64(p.MaxLocalPayload()) {
		return nil, &format.RecordError{Page: p.Index, Cell: i,
			Reason: fmt.Sprintf("payload of %d bytes exceeds local maximum %d", payload, p.MaxLocalPayload()),
			Err:    format.ErrUnsupportedOverflow}
	}
	rec, err := Decode(cell)
	if err != nil {
		return nil, locate(err, p.Index, i)
	}
	return rec, nil
}

func locate(err error, pageIndex, cell int) error {
	var re *format.RecordError
	if errors.As(err, &re) && re.Page < 0 {
		re.Page = pageIndex
		re.Cell = cell
	}
	return err
}
