package bitmap

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"
)

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadDecodes(t *testing.T) {
	l := NewLoader(time.Minute)
	b := l.Load(pngBytes(t, 4, 3, color.NRGBA{R: 255, A: 255}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	img, err := b.Wait(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(4, 3) {
		t.Errorf("size = %v, want 4x3", got)
	}
	if !b.Ready() {
		t.Error("bitmap should be ready after Wait")
	}
}

func TestLoadSharesDecode(t *testing.T) {
	l := NewLoader(time.Minute)
	data := pngBytes(t, 2, 2, color.White)
	if a, b := l.Load(data), l.Load(data); a != b {
		t.Error("identical bytes should share one bitmap")
	}
}

func TestLoadFailures(t *testing.T) {
	l := NewLoader(time.Minute)
	ctx := context.Background()

	if _, err := l.Load(nil).Wait(ctx); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty input err = %v, want ErrEmpty", err)
	}
	if _, err := l.Load([]byte("not an image")).Wait(ctx); err == nil {
		t.Error("garbage input should fail to decode")
	}
	if _, err := l.LoadFile("/does/not/exist.png").Wait(ctx); err == nil {
		t.Error("missing file should fail")
	}
}

func TestWaitHonoursContext(t *testing.T) {
	b := newBitmap("pending")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if b.Ready() {
		t.Error("pending bitmap reported ready")
	}
}

func TestNewPendingResolvesOnce(t *testing.T) {
	b, resolve := NewPending("manual")
	if b.Ready() {
		t.Fatal("pending bitmap reported ready")
	}
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	resolve(img, nil)
	resolve(nil, errors.New("late"))

	got, err := b.Wait(context.Background())
	if err != nil || got != img {
		t.Errorf("Wait = %v, %v; want the first resolution", got, err)
	}
}
