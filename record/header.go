// header.go - Cell prefix and record header parsing
package record

import (
	"github.com/wilhasse/go-sqlite/column"
	"github.com/wilhasse/go-sqlite/format"
)

// Header is the decoded front of a table leaf cell: the payload length and
// row id varints, then the record header with one serial type per column.
type Header struct {
	PayloadLen  int64
	RowID       int64
	PrefixLen   int   // bytes used by the payload length and row id varints
	HeaderLen   int64 // record header length, including its own varint
	SerialTypes []column.SerialType
	BodyOffset  int // offset within the cell where the record body begins
}

// ParseHeader decodes the cell prefix and the serial type list. The number
// of bytes consumed by the serial types must match the header length exactly.
func ParseHeader(cell []byte) (Header, error) {
	payload, n := format.GetVarint(cell, 0)
	if n == 0 {
		return Header{}, format.Malformed("empty cell")
	}
	off := n
	rowid, n := format.GetVarint(cell, off)
	if n == 0 {
		return Header{}, format.Malformed("cell ends before row id")
	}
	off += n
	if payload < 0 {
		return Header{}, format.Malformed("negative payload length %d", payload)
	}
	h := Header{PayloadLen: payload, RowID: rowid, PrefixLen: off}

	hdrLen, n := format.GetVarint(cell, off)
	if n == 0 {
		return Header{}, format.Malformed("cell ends before record header")
	}
	if hdrLen < int64(n) || hdrLen > int64(len(cell)-off) {
		return Header{}, format.Malformed("record header length %d out of range", hdrLen)
	}
	h.HeaderLen = hdrLen
	off += n

	want := int(hdrLen) - n
	consumed := 0
	for consumed < want {
		st, n := format.GetVarint(cell, off)
		if n == 0 {
			return Header{}, format.Malformed("serial type list runs past the cell")
		}
		off += n
		consumed += n
		h.SerialTypes = append(h.SerialTypes, column.SerialType(st))
	}
	if consumed != want {
		return Header{}, format.Malformed("serial types use %d bytes, header length says %d", consumed, want)
	}
	h.BodyOffset = off
	return h, nil
}
