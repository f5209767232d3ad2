package bitmap

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/patrickmn/go-cache"

	_ "golang.org/x/image/webp"
)

// DefaultTTL is how long decoded bitmaps stay cached.
const DefaultTTL = 30 * time.Minute

// Loader decodes image bytes asynchronously. Identical inputs share one
// decode, so a background reused by every card is decoded once.
type Loader struct {
	cache *cache.Cache
}

// NewLoader creates a Loader whose decoded bitmaps expire after ttl.
func NewLoader(ttl time.Duration) *Loader {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Loader{cache: cache.New(ttl, 2*ttl)}
}

// Load starts decoding data and returns immediately.
func (l *Loader) Load(data []byte) *Bitmap {
	if len(data) == 0 {
		return Failed("", ErrEmpty)
	}
	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])

	if v, ok := l.cache.Get(key); ok {
		return v.(*Bitmap)
	}
	b := newBitmap(key)
	if err := l.cache.Add(key, b, cache.DefaultExpiration); err != nil {
		// lost the race against a concurrent Load of the same bytes
		if v, ok := l.cache.Get(key); ok {
			return v.(*Bitmap)
		}
	}
	go l.decode(b, data)
	return b
}

// LoadFile reads path and starts decoding it. Read errors are reported
// through the returned bitmap.
func (l *Loader) LoadFile(path string) *Bitmap {
	data, err := os.ReadFile(path)
	if err != nil {
		return Failed(path, fmt.Errorf("read %s: %w", path, err))
	}
	return l.Load(data)
}

func (l *Loader) decode(b *Bitmap, data []byte) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		// failed decodes are not cached so a re-upload can retry
		l.cache.Delete(b.key)
		slog.Debug("bitmap decode failed", "key", b.key[:12], "error", err)
		b.finish(nil, fmt.Errorf("decode bitmap: %w", err))
		return
	}
	b.finish(img, nil)
}
