package deck

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"time"
)

// ErrFinalized is returned when entries are added after Finalize.
var ErrFinalized = errors.New("archive already finalized")

// Archive collects named files into a single blob.
type Archive interface {
	AddEntry(name string, data []byte) error
	Finalize() ([]byte, error)
}

// ZipArchive builds a zip file in memory.
type ZipArchive struct {
	buf  bytes.Buffer
	zw   *zip.Writer
	done bool
	// Modified is stamped on every entry; the zero value keeps output
	// reproducible.
	Modified time.Time
}

func NewZip() *ZipArchive {
	z := &ZipArchive{}
	z.zw = zip.NewWriter(&z.buf)
	return z
}

func (z *ZipArchive) AddEntry(name string, data []byte) error {
	if z.done {
		return ErrFinalized
	}
	w, err := z.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: z.Modified,
	})
	if err != nil {
		return fmt.Errorf("zip entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("zip entry %s: %w", name, err)
	}
	return nil
}

// Finalize closes the archive and returns its bytes.
func (z *ZipArchive) Finalize() ([]byte, error) {
	if z.done {
		return nil, ErrFinalized
	}
	z.done = true
	if err := z.zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return z.buf.Bytes(), nil
}
