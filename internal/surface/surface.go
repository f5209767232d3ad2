// Package surface defines the 2D drawing target the compositor paints on
// and provides a raster implementation of it.
package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/youruser/cardtoolkit/internal/fonts"
)

// ErrUnknownFormat is returned for export formats other than PNG and WEBP.
var ErrUnknownFormat = errors.New("unknown image format")

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Baseline selects what the y coordinate of FillText and StrokeText refers to.
type Baseline int

const (
	// BaselineTop puts y at the top of the line box (ascent above baseline).
	BaselineTop Baseline = iota
	BaselineAlphabetic
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatWEBP Format = "webp"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatPNG, FormatWEBP:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Ext is the file extension without the dot.
func (f Format) Ext() string { return string(f) }

func (f Format) MIMEType() string { return "image/" + string(f) }

type TextMetrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

func (m TextMetrics) Height() float64 { return m.Ascent + m.Descent }

// Shadow is applied to text drawn while it is set. The zero value disables
// shadows.
type Shadow struct {
	Color   color.Color
	Blur    float64
	OffsetX float64
	OffsetY float64
}

func (s Shadow) Enabled() bool { return s.Color != nil }

// Surface is a fixed size drawing target. Text state (font, alignment,
// baseline, fill, stroke, shadow) persists between calls until changed.
// Implementations are not safe for concurrent use.
type Surface interface {
	Width() int
	Height() int

	FillRect(x, y, w, h float64, c color.Color)
	// DrawImage draws img scaled to the w×h box at (x, y).
	DrawImage(img image.Image, x, y, w, h int)

	SetGlobalAlpha(alpha float64)
	SetFont(family string, sizePx float64, weight fonts.Weight) error
	MeasureText(text string) TextMetrics
	SetTextAlign(a Align)
	SetTextBaseline(b Baseline)
	SetFillColor(c color.Color)
	// SetStroke sets the outline used by StrokeText; width 0 disables it.
	SetStroke(c color.Color, width float64)
	SetShadow(s Shadow)
	FillText(text string, x, y float64)
	StrokeText(text string, x, y float64)

	Encode(w io.Writer, f Format) error
}
