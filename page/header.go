// header.go - Database file header parsing (first 100 bytes of page 0)
package page

import (
	"bytes"
	"fmt"

	"github.com/wilhasse/go-sqlite/format"
)

// DatabaseHeader holds the fields of the 100-byte file preamble that the
// reader needs. It is read once per session and never modified.
type DatabaseHeader struct {
	PageSize      int // bytes per page, a power of two in 128..65536
	ReservedSpace int // unused bytes at the end of every page
	TextEncoding  format.TextEncoding
	WriteVersion  uint8
	ReadVersion   uint8
	ChangeCounter uint32
	PageCount     uint32 // in-header database size, may be stale on legacy files
	SchemaCookie  uint32
	SchemaFormat  uint32
	UserVersion   uint32
	ApplicationID uint32
	VersionNumber uint32 // library version that last wrote the file
}

// UsableSize is the page size minus the per-page reserved region.
func (h DatabaseHeader) UsableSize() int { return h.PageSize - h.ReservedSpace }

// ParseDatabaseHeader decodes the file header. Any text encoding other than
// UTF-8 is rejected so no page is ever decoded with the wrong text codec.
func ParseDatabaseHeader(p []byte) (DatabaseHeader, error) {
	if len(p) < format.FileHeaderSize {
		return DatabaseHeader{}, fmt.Errorf("short header: %d bytes: %w", len(p), format.ErrShortRead)
	}
	if !bytes.Equal(p[format.OffsetMagic:format.OffsetMagic+len(format.MagicString)], []byte(format.MagicString)) {
		return DatabaseHeader{}, format.ErrNotDatabase
	}

	raw, _ := format.Be16(p, format.OffsetPageSize)
	pageSize := int(raw)
	if raw == 1 {
		pageSize = format.MaxPageSize
	}
	if pageSize < format.MinPageSize || pageSize > format.MaxPageSize || pageSize&(pageSize-1) != 0 {
		return DatabaseHeader{}, fmt.Errorf("%w: %d", format.ErrInvalidPageSize, raw)
	}

	enc, _ := format.Be32(p, format.OffsetTextEncoding)
	if format.TextEncoding(enc) != format.EncodingUTF8 {
		return DatabaseHeader{}, fmt.Errorf("%w: %d (%s)", format.ErrUnsupportedTextEncoding, enc, format.TextEncoding(enc))
	}

	reserved := int(p[format.OffsetReservedSpace])
	if pageSize-reserved < format.MinUsableSize {
		return DatabaseHeader{}, fmt.Errorf("%w: %d reserved bytes on %d-byte pages", format.ErrInvalidPageSize, reserved, pageSize)
	}

	changes, _ := format.Be32(p, format.OffsetChangeCounter)
	count, _ := format.Be32(p, format.OffsetPageCount)
	cookie, _ := format.Be32(p, format.OffsetSchemaCookie)
	schemaFmt, _ := format.Be32(p, format.OffsetSchemaFormat)
	userVer, _ := format.Be32(p, format.OffsetUserVersion)
	appID, _ := format.Be32(p, format.OffsetApplicationID)
	version, _ := format.Be32(p, format.OffsetVersionNumber)

	return DatabaseHeader{
		PageSize: pageSize, ReservedSpace: reserved, TextEncoding: format.TextEncoding(enc),
		WriteVersion: p[format.OffsetWriteVersion], ReadVersion: p[format.OffsetReadVersion],
		ChangeCounter: changes, PageCount: count, SchemaCookie: cookie, SchemaFormat: schemaFmt,
		UserVersion: userVer, ApplicationID: appID, VersionNumber: version,
	}, nil
}
