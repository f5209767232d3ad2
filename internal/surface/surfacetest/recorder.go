// Package surfacetest provides a Surface that records calls instead of
// drawing, for asserting draw order and arguments.
package surfacetest

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/youruser/cardtoolkit/internal/fonts"
	"github.com/youruser/cardtoolkit/internal/surface"
)

// Call is one recorded drawing operation.
type Call struct {
	Op    string
	Text  string
	X, Y  float64
	W, H  float64
	Color color.Color
	Align surface.Align
	Alpha float64
}

// Recorder implements surface.Surface. Text metrics are synthetic: every
// rune is half the font size wide, ascent is 0.8 and descent 0.2 of the
// font size.
type Recorder struct {
	W, H  int
	Calls []Call

	size        float64
	family      string
	alpha       float64
	align       surface.Align
	fill        color.Color
	strokeWidth float64
}

func New(w, h int) *Recorder {
	return &Recorder{W: w, H: h, alpha: 1, size: 10}
}

func (r *Recorder) record(c Call) {
	c.Align = r.align
	c.Alpha = r.alpha
	r.Calls = append(r.Calls, c)
}

func (r *Recorder) Width() int  { return r.W }
func (r *Recorder) Height() int { return r.H }

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.record(Call{Op: "FillRect", X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) DrawImage(img image.Image, x, y, w, h int) {
	r.record(Call{Op: "DrawImage", X: float64(x), Y: float64(y), W: float64(w), H: float64(h)})
}

func (r *Recorder) SetGlobalAlpha(alpha float64) { r.alpha = alpha }

func (r *Recorder) SetFont(family string, sizePx float64, weight fonts.Weight) error {
	r.family, r.size = family, sizePx
	r.record(Call{Op: "SetFont", Text: fmt.Sprintf("%s/%s", family, weight), H: sizePx})
	return nil
}

func (r *Recorder) MeasureText(text string) surface.TextMetrics {
	if text == "" {
		return surface.TextMetrics{}
	}
	return surface.TextMetrics{
		Width:   0.5 * r.size * float64(len([]rune(text))),
		Ascent:  0.8 * r.size,
		Descent: 0.2 * r.size,
	}
}

func (r *Recorder) SetTextAlign(a surface.Align)      { r.align = a }
func (r *Recorder) SetTextBaseline(surface.Baseline) {}
func (r *Recorder) SetFillColor(c color.Color)        { r.fill = c }

func (r *Recorder) SetStroke(c color.Color, width float64) {
	r.strokeWidth = width
	r.record(Call{Op: "SetStroke", W: width, Color: c})
}

func (r *Recorder) SetShadow(s surface.Shadow) {
	if s.Enabled() {
		r.record(Call{Op: "SetShadow", X: s.OffsetX, Y: s.OffsetY, W: s.Blur, Color: s.Color})
	}
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.record(Call{Op: "FillText", Text: text, X: x, Y: y, Color: r.fill, H: r.size})
}

func (r *Recorder) StrokeText(text string, x, y float64) {
	r.record(Call{Op: "StrokeText", Text: text, X: x, Y: y, W: r.strokeWidth})
}

// Encode writes a short textual summary instead of image bytes.
func (r *Recorder) Encode(w io.Writer, f surface.Format) error {
	_, err := fmt.Fprintf(w, "%s:%dx%d:%d", f, r.W, r.H, len(r.Calls))
	return err
}

// Ops returns the recorded operation names, optionally filtered.
func (r *Recorder) Ops(only ...string) []string {
	keep := map[string]bool{}
	for _, o := range only {
		keep[o] = true
	}
	var out []string
	for _, c := range r.Calls {
		if len(keep) == 0 || keep[c.Op] {
			out = append(out, c.Op)
		}
	}
	return out
}

// Find returns the recorded calls with the given op.
func (r *Recorder) Find(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

var _ surface.Surface = (*Recorder)(nil)
