// page.go - B-tree leaf page parsing with its cell pointer array
package page

import (
	"encoding/hex"
	"fmt"

	"github.com/wilhasse/go-sqlite/format"
	"github.com/zeebo/blake3"
)

// Page is one decoded b-tree leaf page. It owns its raw bytes; cells are
// handed out as views into Data.
type Page struct {
	Index            int // 0-based position in the file
	Type             format.PageType
	FirstFreeblock   uint16
	NumCells         uint16
	CellContentStart int // 65536 when the header stores 0
	FragmentedBytes  uint8
	CellOffsets      []uint16 // offsets from the start of Data, in on-page order
	Data             []byte   // full page bytes, including the file header on page 0
	usableSize       int
}

// HeaderOffset returns where the page header starts within Data. Page 0
// carries the 100-byte file header first.
func HeaderOffset(index int) int {
	if index == 0 {
		return format.FileHeaderSize
	}
	return 0
}

// ParsePage decodes the page header and the cell pointer array. Only leaf
// table and leaf index pages are accepted.
func ParsePage(index int, data []byte, hdr DatabaseHeader) (*Page, error) {
	if len(data) != hdr.PageSize {
		return nil, fmt.Errorf("page %d: expected %dB page, got %d: %w", index, hdr.PageSize, len(data), format.ErrShortRead)
	}
	off := HeaderOffset(index)

	pt := format.PageType(data[off+format.PageHeaderOffsetType])
	if !pt.IsLeaf() {
		return nil, &format.PageTypeError{Page: index, Type: pt}
	}
	free, _ := format.Be16(data, off+format.PageHeaderOffsetFreeblock)
	nCells, _ := format.Be16(data, off+format.PageHeaderOffsetNumCells)
	start, _ := format.Be16(data, off+format.PageHeaderOffsetCellStart)
	contentStart := int(start)
	if contentStart == 0 {
		contentStart = format.MaxPageSize
	}

	usable := hdr.UsableSize()
	ptrStart := off + format.LeafPageHeaderSize
	ptrEnd := ptrStart + int(nCells)*format.CellPointerSize
	if ptrEnd > usable {
		return nil, &format.RecordError{Page: index, Cell: -1,
			Reason: fmt.Sprintf("cell pointer array of %d cells overruns page", nCells)}
	}

	// Cell offsets are relative to the page start on every page, page 0 included.
	offsets := make([]uint16, nCells)
	for i := range offsets {
		v, _ := format.Be16(data, ptrStart+i*format.CellPointerSize)
		if int(v) < ptrEnd || int(v) >= usable {
			return nil, &format.RecordError{Page: index, Cell: i,
				Reason: fmt.Sprintf("cell offset %d outside content area [%d,%d)", v, ptrEnd, usable)}
		}
		offsets[i] = v
	}

	return &Page{
		Index: index, Type: pt, FirstFreeblock: free, NumCells: nCells,
		CellContentStart: contentStart, FragmentedBytes: data[off+format.PageHeaderOffsetFragmented],
		CellOffsets: offsets, Data: data, usableSize: usable,
	}, nil
}

// Number is the 1-based page number used by the schema's rootpage column.
func (p *Page) Number() int { return p.Index + 1 }

func (p *Page) IsTable() bool { return p.Type == format.PageTypeLeafTable }

// Cell returns the bytes from the i-th cell's start to the end of the usable
// area. The record decoder stops where the record ends.
func (p *Page) Cell(i int) ([]byte, error) {
	if i < 0 || i >= len(p.CellOffsets) {
		return nil, fmt.Errorf("cell index out of range: %d (page %d has %d)", i, p.Index, len(p.CellOffsets))
	}
	return p.Data[p.CellOffsets[i]:p.usableSize], nil
}

// MaxLocalPayload is the largest table-leaf payload stored without overflow.
func (p *Page) MaxLocalPayload() int {
	return p.usableSize - format.TableLeafMaxLocalOverhead
}

// FreeBytes is the unallocated gap between the cell pointer array and the
// cell content area.
func (p *Page) FreeBytes() int {
	end := HeaderOffset(p.Index) + format.LeafPageHeaderSize + len(p.CellOffsets)*format.CellPointerSize
	if p.CellContentStart < end {
		return 0
	}
	return p.CellContentStart - end
}

// Digest is the hex blake3 hash of the raw page bytes.
func (p *Page) Digest() string {
	sum := blake3.Sum256(p.Data)
	return hex.EncodeToString(sum[:])
}
