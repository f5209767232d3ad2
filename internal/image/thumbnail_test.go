package imagepkg

import (
	"context"
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/youruser/cardtoolkit/internal/bitmap"
	"github.com/youruser/cardtoolkit/internal/setting"
	"github.com/youruser/cardtoolkit/internal/surface"
	"github.com/youruser/cardtoolkit/internal/surface/surfacetest"
)

func photo() *bitmap.Bitmap {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 9))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return bitmap.FromImage("photo", img)
}

func TestRenderThumbnailLayout(t *testing.T) {
	rec := surfacetest.New(1280, 720)
	style := setting.DefaultThumbnail().WithHighlight(true)
	if err := RenderThumbnail(context.Background(), rec, photo(), "Hello\nWorld!", style); err != nil {
		t.Fatal(err)
	}

	ops := rec.Ops("DrawImage", "FillRect", "FillText")
	if want := []string{"DrawImage", "FillRect", "FillText", "FillText"}; !reflect.DeepEqual(ops, want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}

	box := rec.Find("FillRect")[0]
	// widest line is 6 runes * 10px, two lines of 24px centred on 360
	if box.X != 590 || box.Y != 316 || box.W != 100 || box.H != 88 {
		t.Errorf("highlight = (%v,%v %vx%v)", box.X, box.Y, box.W, box.H)
	}
	if box.Color != HighlightColor {
		t.Errorf("highlight color = %v", box.Color)
	}

	fills := rec.Find("FillText")
	for i, wantY := range []float64{336, 360} {
		f := fills[i]
		if f.X != 640 || f.Y != wantY || f.Align != surface.AlignCenter {
			t.Errorf("line %d at (%v,%v) %v", i, f.X, f.Y, f.Align)
		}
	}
}

func TestRenderThumbnailNoHighlight(t *testing.T) {
	rec := surfacetest.New(1280, 720)
	if err := RenderThumbnail(context.Background(), rec, photo(), "Hi", setting.DefaultThumbnail()); err != nil {
		t.Fatal(err)
	}
	if got := rec.Find("FillRect"); len(got) != 0 {
		t.Errorf("highlight drawn while disabled: %+v", got)
	}
}

func TestRenderThumbnailImageOpacity(t *testing.T) {
	rec := surfacetest.New(1280, 720)
	style := setting.DefaultThumbnail().WithImageOpacity(0.4)
	if err := RenderThumbnail(context.Background(), rec, photo(), "Hi", style); err != nil {
		t.Fatal(err)
	}
	draw := rec.Find("DrawImage")
	if len(draw) != 1 || draw[0].Alpha != 0.4 || draw[0].W != 1280 || draw[0].H != 720 {
		t.Errorf("DrawImage = %+v", draw)
	}
	if fill := rec.Find("FillText")[0]; fill.Alpha != 1 {
		t.Errorf("text alpha = %v, want 1", fill.Alpha)
	}
}

func TestRenderThumbnailEmptyText(t *testing.T) {
	rec := surfacetest.New(640, 360)
	style := setting.DefaultThumbnail().WithHighlight(true)
	if err := RenderThumbnail(context.Background(), rec, photo(), "", style); err != nil {
		t.Fatal(err)
	}
	if ops := rec.Ops(); !reflect.DeepEqual(ops, []string{"DrawImage"}) {
		t.Errorf("ops = %v, want only the image", ops)
	}
}

func TestRenderThumbnailWithoutImage(t *testing.T) {
	style := setting.DefaultThumbnail().WithBackgroundColor("#336699")
	c := surface.NewCanvas(200, 100, nil)
	if err := RenderThumbnail(context.Background(), c, nil, "x", style); err != nil {
		t.Fatal(err)
	}
	if got := nrgbaAt(c.Image(), 0, 0); got != blue {
		t.Errorf("corner = %v, want %v", got, blue)
	}
}

func TestRenderThumbnailStroke(t *testing.T) {
	rec := surfacetest.New(1280, 720)
	style := setting.DefaultThumbnail().WithStroke(3, "black")
	if err := RenderThumbnail(context.Background(), rec, photo(), "a\nb\nc", style); err != nil {
		t.Fatal(err)
	}
	strokes := rec.Find("StrokeText")
	if len(strokes) != 3 || strokes[0].W != 3 {
		t.Errorf("strokes = %+v", strokes)
	}
	set := rec.Find("SetStroke")
	if len(set) != 1 || set[0].Color != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("SetStroke = %+v", set)
	}
}

func TestRenderThumbnailPixels(t *testing.T) {
	c := surface.NewCanvas(400, 200, nil)
	style := setting.DefaultThumbnail().WithText(40, "black", "bold").WithHighlight(true)
	if err := RenderThumbnail(context.Background(), c, photo(), "Go", style); err != nil {
		t.Fatal(err)
	}
	if got := nrgbaAt(c.Image(), 0, 0); got != white {
		t.Errorf("corner = %v, want the white photo", got)
	}
	// highlight darkens the area just inside its padding
	if got := nrgbaAt(c.Image(), 200, 100-24-10); got.R > 140 {
		t.Errorf("highlight pixel = %v, want darkened", got)
	}
}
