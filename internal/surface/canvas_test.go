package surface

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/webp"

	"github.com/youruser/cardtoolkit/internal/fonts"
)

var (
	white = color.NRGBA{255, 255, 255, 255}
	black = color.NRGBA{0, 0, 0, 255}
	red   = color.NRGBA{255, 0, 0, 255}
)

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

// inkColumns returns the leftmost and rightmost columns that differ from bg.
func inkColumns(img image.Image, bg color.NRGBA) (int, int) {
	b := img.Bounds()
	minX, maxX := -1, -1
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			if nrgbaAt(img, x, y) != bg {
				if minX < 0 {
					minX = x
				}
				maxX = x
				break
			}
		}
	}
	return minX, maxX
}

func TestFillRectAndAlpha(t *testing.T) {
	c := NewCanvas(20, 10, nil)
	c.FillRect(0, 0, 20, 10, white)
	c.SetGlobalAlpha(0.5)
	c.FillRect(0, 0, 10, 10, black)

	if got := nrgbaAt(c.Image(), 15, 5); got != white {
		t.Errorf("right half = %v, want white", got)
	}
	got := nrgbaAt(c.Image(), 5, 5)
	if got.R < 120 || got.R > 135 || got.A != 255 {
		t.Errorf("half alpha black over white = %v, want mid grey", got)
	}
}

func TestDrawImageScalesToBox(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	c := NewCanvas(40, 40, nil)
	c.DrawImage(src, 0, 0, 40, 40)
	if got := nrgbaAt(c.Image(), 20, 20); got != white {
		t.Errorf("centre = %v, want white", got)
	}

	faded := NewCanvas(10, 10, nil)
	faded.SetGlobalAlpha(0.25)
	faded.DrawImage(src, 0, 0, 10, 10)
	if a := nrgbaAt(faded.Image(), 5, 5).A; a < 55 || a > 75 {
		t.Errorf("alpha = %d, want about 64", a)
	}
}

func TestMeasureText(t *testing.T) {
	c := NewCanvas(100, 100, nil)
	if err := c.SetFont("Arial", 40, fonts.WeightNormal); err != nil {
		t.Fatal(err)
	}
	if m := c.MeasureText(""); m != (TextMetrics{}) {
		t.Errorf("empty text metrics = %+v", m)
	}
	short, long := c.MeasureText("ab"), c.MeasureText("abcd")
	if short.Width <= 0 || long.Width <= short.Width {
		t.Errorf("widths %v, %v not increasing", short.Width, long.Width)
	}
	if short.Height() != long.Height() || short.Height() < 30 || short.Height() > 60 {
		t.Errorf("heights %v, %v", short.Height(), long.Height())
	}
	if err := c.SetFont("Arial", 0, fonts.WeightNormal); err == nil {
		t.Error("zero font size accepted")
	}
}

func TestFillTextAlignment(t *testing.T) {
	const margin = 50.0
	for _, width := range []int{500, 1080} {
		c := NewCanvas(width, 200, nil)
		c.FillRect(0, 0, float64(width), 200, white)
		if err := c.SetFont("Arial", 48, fonts.WeightBold); err != nil {
			t.Fatal(err)
		}
		c.SetFillColor(black)
		c.SetTextAlign(AlignRight)
		c.SetTextBaseline(BaselineTop)
		c.FillText("Title", float64(width)-margin, 20)

		_, right := inkColumns(c.Image(), white)
		edge := width - int(margin)
		if right < 0 || right > edge+1 || right < edge-15 {
			t.Errorf("width %d: rightmost ink at %d, want just inside %d", width, right, edge)
		}
	}
}

func TestStrokeText(t *testing.T) {
	c := NewCanvas(200, 100, nil)
	c.FillRect(0, 0, 200, 100, white)
	if err := c.SetFont("Arial", 48, fonts.WeightBold); err != nil {
		t.Fatal(err)
	}
	c.SetStroke(red, 0)
	c.StrokeText("Hi", 20, 20)
	if l, _ := inkColumns(c.Image(), white); l >= 0 {
		t.Fatal("zero width stroke painted pixels")
	}

	c.SetStroke(red, 3)
	c.StrokeText("Hi", 20, 20)
	found := false
	b := c.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if p := nrgbaAt(c.Image(), x, y); p.R > 200 && p.G < 60 && p.B < 60 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("stroke did not paint any red pixel")
	}
}

func TestShadowPaintsOffset(t *testing.T) {
	plain := NewCanvas(200, 100, nil)
	shadowed := NewCanvas(200, 100, nil)
	for _, c := range []*Canvas{plain, shadowed} {
		c.FillRect(0, 0, 200, 100, white)
		if err := c.SetFont("Arial", 40, fonts.WeightNormal); err != nil {
			t.Fatal(err)
		}
		c.SetFillColor(black)
	}
	shadowed.SetShadow(Shadow{Color: color.NRGBA{0, 0, 0, 128}, Blur: 4, OffsetX: 2, OffsetY: 2})
	plain.FillText("Shadow", 10, 10)
	shadowed.FillText("Shadow", 10, 10)

	_, plainRight := inkColumns(plain.Image(), white)
	_, shadowRight := inkColumns(shadowed.Image(), white)
	if shadowRight <= plainRight {
		t.Errorf("shadow should extend ink to the right: %d vs %d", shadowRight, plainRight)
	}
}

func TestEncode(t *testing.T) {
	c := NewCanvas(16, 8, nil)
	c.FillRect(0, 0, 16, 8, red)

	var pngBuf bytes.Buffer
	if err := c.Encode(&pngBuf, FormatPNG); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&pngBuf)
	if err != nil {
		t.Fatal(err)
	}
	if got := nrgbaAt(img, 3, 3); got != red {
		t.Errorf("png pixel = %v", got)
	}

	var webpBuf bytes.Buffer
	if err := c.Encode(&webpBuf, FormatWEBP); err != nil {
		t.Fatal(err)
	}
	wimg, err := webp.Decode(&webpBuf)
	if err != nil {
		t.Fatal(err)
	}
	if wimg.Bounds().Dx() != 16 || wimg.Bounds().Dy() != 8 {
		t.Errorf("webp bounds = %v", wimg.Bounds())
	}

	if err := c.Encode(&bytes.Buffer{}, "gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("gif err = %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"png": FormatPNG, ".WEBP": FormatWEBP} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("jpg"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("jpg err = %v", err)
	}
	if FormatWEBP.MIMEType() != "image/webp" {
		t.Error(FormatWEBP.MIMEType())
	}
}
