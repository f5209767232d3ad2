package imagepkg

import (
	"strings"

	"github.com/youruser/cardtoolkit/internal/setting"
	"github.com/youruser/cardtoolkit/internal/surface"
)

const (
	// Margin keeps text away from the surface edges.
	Margin = 50.0
	// LineMargin is the gap above every content line.
	LineMargin = 10.0
)

// splitLines splits text on newlines, dropping the carriage return of CRLF
// line endings.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// anchorX returns the x coordinate text is anchored at and the matching
// drawing alignment.
func anchorX(a setting.HorizontalAlign, width float64) (float64, surface.Align) {
	switch a {
	case setting.AlignRight:
		return width - Margin, surface.AlignRight
	case setting.AlignCenter:
		return width / 2, surface.AlignCenter
	default:
		return Margin, surface.AlignLeft
	}
}

// baseY positions the top of the content block before the title shift is
// applied.
func baseY(a setting.VerticalAlign, height, contentHeight float64) float64 {
	switch a {
	case setting.AlignMiddle:
		return height/2 - contentHeight/2
	case setting.AlignBottom:
		return height - Margin - contentHeight
	default:
		return Margin
	}
}

// titleShift moves the block up to make room for a title of titleHeight.
func titleShift(a setting.VerticalAlign, titleHeight float64) float64 {
	switch a {
	case setting.AlignMiddle:
		return -titleHeight / 2
	case setting.AlignBottom:
		return -titleHeight
	default:
		return 0
	}
}

// contentHeight measures lines at the surface's current font.
func contentHeight(s surface.Surface, lines []string) float64 {
	h := 0.0
	for _, l := range lines {
		h += LineMargin + s.MeasureText(l).Height()
	}
	return h
}
