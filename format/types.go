// types.go - File format constants
package format

// Sizes and constants
const (
	FileHeaderSize = 100
	MagicString    = "SQLite format 3\x00"

	// Any power of two in range. Smaller sizes cannot hold page 0's file
	// header and b-tree page header.
	MinPageSize = 128
	MaxPageSize = 65536
	// Usable bytes (page size minus reserved space) page 0 needs for its headers.
	MinUsableSize = FileHeaderSize + LeafPageHeaderSize

	// A b-tree leaf page header is 8 bytes, interior pages add a 4-byte right child.
	LeafPageHeaderSize     = 8
	InteriorPageHeaderSize = 12
	CellPointerSize        = 2

	// Table leaf cells larger than usable-35 spill onto overflow pages.
	TableLeafMaxLocalOverhead = 35
)

// Database header offsets (first 100 bytes of page 0)
const (
	OffsetMagic         = 0
	OffsetPageSize      = 16 // u16, 1 means 65536
	OffsetWriteVersion  = 18
	OffsetReadVersion   = 19
	OffsetReservedSpace = 20
	OffsetChangeCounter = 24
	OffsetPageCount     = 28
	OffsetSchemaCookie  = 40
	OffsetSchemaFormat  = 44
	OffsetTextEncoding  = 56 // u32
	OffsetUserVersion   = 60
	OffsetApplicationID = 68
	OffsetVersionNumber = 96
)

// Page header offsets, relative to the start of the page header
const (
	PageHeaderOffsetType       = 0
	PageHeaderOffsetFreeblock  = 1
	PageHeaderOffsetNumCells   = 3
	PageHeaderOffsetCellStart  = 5
	PageHeaderOffsetFragmented = 7
	PageHeaderOffsetRightChild = 8
)

// Text encodings stored at OffsetTextEncoding
type TextEncoding uint32

const (
	EncodingUTF8    TextEncoding = 1
	EncodingUTF16LE TextEncoding = 2
	EncodingUTF16BE TextEncoding = 3
)

func (e TextEncoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingUTF16LE:
		return "UTF-16le"
	case EncodingUTF16BE:
		return "UTF-16be"
	default:
		return "unknown"
	}
}

// Page types (first byte of a b-tree page header)
type PageType uint8

const (
	PageTypeInteriorIndex PageType = 0x02
	PageTypeInteriorTable PageType = 0x05
	PageTypeLeafIndex     PageType = 0x0a
	PageTypeLeafTable     PageType = 0x0d
)

func (t PageType) String() string {
	switch t {
	case PageTypeInteriorIndex:
		return "INTERIOR_INDEX"
	case PageTypeInteriorTable:
		return "INTERIOR_TABLE"
	case PageTypeLeafIndex:
		return "LEAF_INDEX"
	case PageTypeLeafTable:
		return "LEAF_TABLE"
	default:
		return "UNKNOWN"
	}
}

// IsLeaf reports whether pages of this type hold no child pointers.
func (t PageType) IsLeaf() bool {
	return t == PageTypeLeafIndex || t == PageTypeLeafTable
}
