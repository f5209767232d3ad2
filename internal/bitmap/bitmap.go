// Package bitmap decodes uploaded images in the background and hands out
// futures that report when the pixels are ready.
package bitmap

import (
	"context"
	"errors"
	"image"
	"sync"
)

// ErrEmpty is reported by bitmaps created from zero-length input.
var ErrEmpty = errors.New("bitmap: empty source")

// Bitmap is a pending or completed image decode.
type Bitmap struct {
	key  string
	done chan struct{}
	img  image.Image
	err  error
}

func newBitmap(key string) *Bitmap {
	return &Bitmap{key: key, done: make(chan struct{})}
}

// FromImage wraps an already decoded image.
func FromImage(key string, img image.Image) *Bitmap {
	b := newBitmap(key)
	b.finish(img, nil)
	return b
}

// Failed returns a bitmap that has already failed with err.
func Failed(key string, err error) *Bitmap {
	b := newBitmap(key)
	b.finish(nil, err)
	return b
}

func (b *Bitmap) finish(img image.Image, err error) {
	b.img, b.err = img, err
	close(b.done)
}

// Key identifies the source the bitmap was loaded from.
func (b *Bitmap) Key() string { return b.key }

// Done is closed once the decode has finished, successfully or not.
func (b *Bitmap) Done() <-chan struct{} { return b.done }

// Ready reports whether the decode has finished.
func (b *Bitmap) Ready() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the decode finishes or ctx is done.
func (b *Bitmap) Wait(ctx context.Context) (image.Image, error) {
	select {
	case <-b.done:
		return b.img, b.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Resolve completes a pending bitmap. Calls after the first are ignored.
type Resolve func(img image.Image, err error)

// NewPending returns an unfinished bitmap together with the function that
// completes it, for callers that decode on their own schedule.
func NewPending(key string) (*Bitmap, Resolve) {
	b := newBitmap(key)
	var once sync.Once
	return b, func(img image.Image, err error) {
		once.Do(func() { b.finish(img, err) })
	}
}
