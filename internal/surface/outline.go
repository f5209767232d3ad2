package surface

import (
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }

// traceText appends the glyph outlines of text to dc's current path with
// the baseline starting at (x, y). Advances and kerning follow the same
// scale truetype.NewFace uses at 72 DPI so the outline lines up with
// text drawn through the face.
func traceText(dc *gg.Context, f *truetype.Font, size float64, text string, x, y float64) {
	scale := fixed.Int26_6(0.5 + size*64)
	var buf truetype.GlyphBuf
	var prev truetype.Index
	for i, r := range []rune(text) {
		idx := f.Index(r)
		if i > 0 {
			x += fromFixed(f.Kern(scale, prev, idx))
		}
		if err := buf.Load(f, scale, idx, font.HintingNone); err == nil {
			start := 0
			for _, end := range buf.Ends {
				traceContour(dc, buf.Points[start:end], x, y)
				start = end
			}
			x += fromFixed(buf.AdvanceWidth)
		}
		prev = idx
	}
}

// traceContour walks one closed TrueType contour. Points flagged off-curve
// are quadratic control points; two consecutive off-curve points imply an
// on-curve point halfway between them. Glyph space has y pointing up.
func traceContour(dc *gg.Context, ps []truetype.Point, dx, dy float64) {
	if len(ps) == 0 {
		return
	}
	at := func(p truetype.Point) (float64, float64) {
		return dx + fromFixed(p.X), dy - fromFixed(p.Y)
	}
	onCurve := func(p truetype.Point) bool { return p.Flags&0x01 != 0 }

	sx, sy := at(ps[0])
	rest := ps[1:]
	if !onCurve(ps[0]) {
		last := ps[len(ps)-1]
		lx, ly := at(last)
		if onCurve(last) {
			sx, sy = lx, ly
			rest = ps[:len(ps)-1]
		} else {
			sx, sy = (sx+lx)/2, (sy+ly)/2
			rest = ps
		}
	}

	dc.MoveTo(sx, sy)
	qx, qy, qOn := sx, sy, true
	for _, p := range rest {
		x, y := at(p)
		on := onCurve(p)
		switch {
		case on && qOn:
			dc.LineTo(x, y)
		case on:
			dc.QuadraticTo(qx, qy, x, y)
		case !qOn:
			dc.QuadraticTo(qx, qy, (qx+x)/2, (qy+y)/2)
		}
		qx, qy, qOn = x, y, on
	}
	if qOn {
		dc.LineTo(sx, sy)
	} else {
		dc.QuadraticTo(qx, qy, sx, sy)
	}
	dc.ClosePath()
}
