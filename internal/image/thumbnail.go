package imagepkg

import (
	"context"
	"image/color"

	"github.com/youruser/cardtoolkit/internal/bitmap"
	"github.com/youruser/cardtoolkit/internal/setting"
	"github.com/youruser/cardtoolkit/internal/surface"
)

const (
	// LineSpacing is the thumbnail line height as a multiple of the text size.
	LineSpacing = 1.2
	// HighlightPadding pads the highlight box around the text block.
	HighlightPadding = 20.0
)

var HighlightColor = color.NRGBA{A: 128}

// RenderThumbnail draws img stretched over s at the style's opacity and
// centres text on top of it, one line under the other. The highlight box,
// when enabled, is painted before any text.
func RenderThumbnail(ctx context.Context, s surface.Surface, img *bitmap.Bitmap, text string, style setting.ThumbnailStyle) error {
	if err := style.Validate(); err != nil {
		return err
	}
	weight, _ := style.Weight()
	fill, _ := style.TextColor.Parse()
	bg, _ := style.BackgroundColor.Parse()

	if err := paintBackground(ctx, s, img, style.ImageOpacity, bg); err != nil {
		return err
	}
	s.SetGlobalAlpha(1)
	if text == "" {
		return nil
	}

	if err := s.SetFont(style.Font, style.TextSize, weight); err != nil {
		return err
	}
	lines := splitLines(text)
	lineHeight := style.TextSize * LineSpacing
	total := lineHeight * float64(len(lines))
	maxWidth := 0.0
	for _, l := range lines {
		if w := s.MeasureText(l).Width; w > maxWidth {
			maxWidth = w
		}
	}

	width, height := float64(s.Width()), float64(s.Height())
	top := (height - total) / 2

	if style.TextHighlight {
		s.FillRect(
			(width-maxWidth)/2-HighlightPadding,
			top-HighlightPadding,
			maxWidth+2*HighlightPadding,
			total+2*HighlightPadding,
			HighlightColor)
	}

	s.SetFillColor(fill)
	s.SetTextAlign(surface.AlignCenter)
	s.SetTextBaseline(surface.BaselineTop)
	s.SetShadow(surface.Shadow{})
	stroke := style.TextStrokeSize > 0
	if stroke {
		sc, _ := style.TextStrokeColor.Parse()
		s.SetStroke(sc, style.TextStrokeSize)
	} else {
		s.SetStroke(nil, 0)
	}
	for i, l := range lines {
		drawText(s, l, width/2, top+float64(i)*lineHeight, stroke)
	}
	return nil
}
