package deck

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/youruser/cardtoolkit/internal/surface"
)

// ArchiveEntryName is the file name of page n (1-based) inside an archive.
func ArchiveEntryName(n int) string {
	return fmt.Sprintf("canvas-image-%d.png", n)
}

// ThumbnailFileName is the download name of an exported thumbnail.
func ThumbnailFileName(f surface.Format) string {
	return "thumbnail." + f.Ext()
}

// ExportSurface encodes the current pixels of s without repainting.
func ExportSurface(s surface.Surface, f surface.Format) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := s.Encode(&buf, f); err != nil {
		return nil, "", fmt.Errorf("encode %s: %w", f, err)
	}
	return buf.Bytes(), ThumbnailFileName(f), nil
}

// ExportArchive waits for every card's latest paint, adds one PNG per card
// to a in page order and returns the finalized archive. A card whose paint
// failed contributes its background fill.
func (d *Deck) ExportArchive(ctx context.Context, a Archive) ([]byte, error) {
	if err := d.Wait(ctx); err != nil {
		return nil, err
	}

	d.mu.Lock()
	states := make([]slotState, len(d.slots))
	for i, sl := range d.slots {
		states[i] = sl.snapshot()
	}
	d.mu.Unlock()

	encoded := make([][]byte, len(states))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for i, st := range states {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if st.surface == nil {
				return fmt.Errorf("page %d: %w", st.card.PageIndex, ErrNotPainted)
			}
			var buf bytes.Buffer
			if err := st.surface.Encode(&buf, surface.FormatPNG); err != nil {
				return fmt.Errorf("page %d: encode: %w", st.card.PageIndex, err)
			}
			encoded[i] = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, b := range encoded {
		if err := a.AddEntry(ArchiveEntryName(i+1), b); err != nil {
			return nil, err
		}
	}
	return a.Finalize()
}
