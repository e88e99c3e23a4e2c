// reader.go - Positional page reader over a database file
package gosqlite

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/wilhasse/go-sqlite/format"
	"github.com/wilhasse/go-sqlite/internal/logging"
	"github.com/wilhasse/go-sqlite/page"
)

// ReadHeader reads and validates the 100-byte file header. No page is
// decoded before the header, and its text encoding, have been accepted.
func ReadHeader(r io.ReaderAt) (page.DatabaseHeader, error) {
	buf := make([]byte, format.FileHeaderSize)
	if err := readFull(r, buf, 0); err != nil {
		return page.DatabaseHeader{}, &format.IOError{Op: "read header", Page: -1, Err: err}
	}
	return page.ParseDatabaseHeader(buf)
}

// PageReader reads whole pages at absolute offsets. It keeps no cursor and
// no cache, so every call goes to storage.
type PageReader struct {
	r   io.ReaderAt
	hdr page.DatabaseHeader
	log *slog.Logger
}

func NewPageReader(r io.ReaderAt, hdr page.DatabaseHeader, logger *slog.Logger) *PageReader {
	return &PageReader{r: r, hdr: hdr, log: logging.Or(logger)}
}

// ReadPage reads and decodes the page at a 0-based index.
func (pr *PageReader) ReadPage(index int) (*page.Page, error) {
	buf, err := pr.ReadRaw(index)
	if err != nil {
		return nil, err
	}
	p, err := page.ParsePage(index, buf, pr.hdr)
	if err != nil {
		return nil, err
	}
	pr.log.Debug("page read", "page", index, "type", p.Type.String(), "cells", len(p.CellOffsets))
	return p, nil
}

// ReadRaw returns the undecoded bytes of the page at a 0-based index.
func (pr *PageReader) ReadRaw(index int) ([]byte, error) {
	if index < 0 {
		return nil, &format.IOError{Op: "read page", Page: index, Err: fmt.Errorf("negative page index")}
	}
	buf := make([]byte, pr.hdr.PageSize)
	off := int64(index) * int64(pr.hdr.PageSize)
	if err := readFull(pr.r, buf, off); err != nil {
		return nil, &format.IOError{Op: "read page", Page: index, Err: err}
	}
	return buf, nil
}

func (pr *PageReader) Header() page.DatabaseHeader { return pr.hdr }

// readFull fills buf from off. A read that ends early is a short read.
func readFull(r io.ReaderAt, buf []byte, off int64) error {
	n, err := r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return fmt.Errorf("%d of %d bytes at offset %d: %w", n, len(buf), off, format.ErrShortRead)
	}
	return err
}
