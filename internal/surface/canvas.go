package surface

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/youruser/cardtoolkit/internal/fonts"
)

type faceKey struct {
	font *truetype.Font
	size float64
}

// Canvas is a raster Surface backed by a gg.Context.
type Canvas struct {
	dc    *gg.Context
	fonts *fonts.Registry

	font  *truetype.Font
	size  float64
	face  font.Face
	faces map[faceKey]font.Face

	alpha       float64
	align       Align
	baseline    Baseline
	fill        color.Color
	strokeColor color.Color
	strokeWidth float64
	shadow      Shadow
}

// NewCanvas returns a transparent width×height canvas using reg for fonts.
// A nil reg uses fonts.Default().
func NewCanvas(width, height int, reg *fonts.Registry) *Canvas {
	if reg == nil {
		reg = fonts.Default()
	}
	c := &Canvas{
		dc:    gg.NewContext(width, height),
		fonts: reg,
		faces: map[faceKey]font.Face{},
		alpha: 1,
		fill:  color.Black,
	}
	// a canvas always has a usable font so MeasureText never sees a nil face
	_ = c.SetFont(fonts.DefaultFamily, 10, fonts.WeightNormal)
	return c
}

func (c *Canvas) Width() int  { return c.dc.Width() }
func (c *Canvas) Height() int { return c.dc.Height() }

// Image exposes the painted pixels.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

func (c *Canvas) SetGlobalAlpha(alpha float64) {
	c.alpha = math.Max(0, math.Min(1, alpha))
}

func (c *Canvas) withAlpha(col color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	n.A = uint8(float64(n.A)*c.alpha + 0.5)
	return n
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	c.dc.SetColor(c.withAlpha(col))
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

func (c *Canvas) DrawImage(img image.Image, x, y, w, h int) {
	if img == nil || w <= 0 || h <= 0 || c.alpha == 0 {
		return
	}
	var src image.Image = img
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		src = imaging.Resize(img, w, h, imaging.Lanczos)
	}
	if c.alpha < 1 {
		// overlaying on a transparent layer scales the source alpha
		src = imaging.Overlay(imaging.New(w, h, color.NRGBA{}), src, image.Pt(0, 0), c.alpha)
	}
	c.dc.DrawImage(src, x, y)
}

func (c *Canvas) SetFont(family string, sizePx float64, weight fonts.Weight) error {
	if sizePx <= 0 {
		return fmt.Errorf("font size must be positive, got %v", sizePx)
	}
	f := c.fonts.Font(family, weight)
	key := faceKey{font: f, size: sizePx}
	face, ok := c.faces[key]
	if !ok {
		face = truetype.NewFace(f, &truetype.Options{Size: sizePx, DPI: 72})
		c.faces[key] = face
	}
	c.font, c.size, c.face = f, sizePx, face
	c.dc.SetFontFace(face)
	return nil
}

// MeasureText uses the font's ascent and descent rather than the ink
// bounds so every line of one font has the same height. Empty text
// measures zero.
func (c *Canvas) MeasureText(text string) TextMetrics {
	if text == "" {
		return TextMetrics{}
	}
	w, _ := c.dc.MeasureString(text)
	m := c.face.Metrics()
	return TextMetrics{
		Width:   w,
		Ascent:  float64(m.Ascent) / 64,
		Descent: float64(m.Descent) / 64,
	}
}

func (c *Canvas) SetTextAlign(a Align)       { c.align = a }
func (c *Canvas) SetTextBaseline(b Baseline) { c.baseline = b }
func (c *Canvas) SetFillColor(col color.Color) {
	c.fill = col
}

func (c *Canvas) SetStroke(col color.Color, width float64) {
	c.strokeColor, c.strokeWidth = col, math.Max(0, width)
}

func (c *Canvas) SetShadow(s Shadow) { c.shadow = s }

// origin converts an anchor point into the left end of the baseline.
func (c *Canvas) origin(text string, x, y float64) (float64, float64, TextMetrics) {
	m := c.MeasureText(text)
	switch c.align {
	case AlignCenter:
		x -= m.Width / 2
	case AlignRight:
		x -= m.Width
	}
	if c.baseline == BaselineTop {
		y += m.Ascent
	}
	return x, y, m
}

func (c *Canvas) FillText(text string, x, y float64) {
	if text == "" {
		return
	}
	ox, oy, m := c.origin(text, x, y)
	if c.shadow.Enabled() {
		c.drawShadow(text, ox, oy, m, false)
	}
	c.dc.SetColor(c.withAlpha(c.fill))
	c.dc.DrawString(text, ox, oy)
}

func (c *Canvas) StrokeText(text string, x, y float64) {
	if text == "" || c.strokeWidth <= 0 || c.strokeColor == nil {
		return
	}
	ox, oy, m := c.origin(text, x, y)
	if c.shadow.Enabled() {
		c.drawShadow(text, ox, oy, m, true)
	}
	c.dc.SetColor(c.withAlpha(c.strokeColor))
	c.strokeOutline(c.dc, text, ox, oy)
}

func (c *Canvas) strokeOutline(dc *gg.Context, text string, x, y float64) {
	dc.SetLineWidth(c.strokeWidth)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineCap(gg.LineCapRound)
	traceText(dc, c.font, c.size, text, x, y)
	dc.Stroke()
}

// drawShadow renders the text shape into a scratch layer just large enough
// for the text plus blur, blurs it and composites it at the shadow offset.
func (c *Canvas) drawShadow(text string, ox, oy float64, m TextMetrics, stroke bool) {
	pad := math.Ceil(c.shadow.Blur*2 + c.strokeWidth)
	w := int(math.Ceil(m.Width + 2*pad))
	h := int(math.Ceil(m.Height() + 2*pad))
	if w <= 0 || h <= 0 {
		return
	}
	layer := gg.NewContext(w, h)
	layer.SetFontFace(c.face)
	layer.SetColor(c.withAlpha(c.shadow.Color))
	if stroke {
		c.strokeOutline(layer, text, pad, pad+m.Ascent)
	} else {
		layer.DrawString(text, pad, pad+m.Ascent)
	}

	var img image.Image = layer.Image()
	if c.shadow.Blur > 0 {
		img = imaging.Blur(img, c.shadow.Blur/2)
	}
	c.dc.DrawImage(img,
		int(math.Round(ox-pad+c.shadow.OffsetX)),
		int(math.Round(oy-m.Ascent-pad+c.shadow.OffsetY)))
}

func (c *Canvas) Encode(w io.Writer, f Format) error {
	switch f {
	case FormatPNG:
		return imaging.Encode(w, c.dc.Image(), imaging.PNG)
	case FormatWEBP:
		return nativewebp.Encode(w, c.dc.Image(), &nativewebp.Options{})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
