// reader_compressed.go - Transparent input of xz-compressed database files
package gosqlite

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/wilhasse/go-sqlite/format"
)

// xzMagic starts every xz stream.
var xzMagic = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// IsCompressed reports whether r holds an xz stream rather than a raw
// database file.
func IsCompressed(r io.ReaderAt) (bool, error) {
	buf := make([]byte, len(xzMagic))
	n, err := r.ReadAt(buf, 0)
	if n < len(buf) {
		if err == nil || err == io.EOF {
			return false, nil
		}
		return false, &format.IOError{Op: "read magic", Page: -1, Err: err}
	}
	return bytes.Equal(buf, xzMagic), nil
}

// Decompress inflates an xz stream into memory so pages can be read at
// absolute offsets. Output beyond limit bytes is an error.
func Decompress(r io.Reader, limit int64) (*bytes.Reader, error) {
	zr, err := xz.NewReader(bufio.NewReader(r))
	if err != nil {
		return nil, &format.IOError{Op: "open xz stream", Page: -1, Err: err}
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(zr, limit+1))
	if err != nil {
		return nil, &format.IOError{Op: "decompress", Page: -1, Err: err}
	}
	if n > limit {
		return nil, &format.IOError{Op: "decompress", Page: -1,
			Err: fmt.Errorf("decompressed size exceeds %d bytes", limit)}
	}
	return bytes.NewReader(buf.Bytes()), nil
}
