package imagepkg

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/youruser/cardtoolkit/internal/bitmap"
	"github.com/youruser/cardtoolkit/internal/cards"
	"github.com/youruser/cardtoolkit/internal/fonts"
	"github.com/youruser/cardtoolkit/internal/setting"
	"github.com/youruser/cardtoolkit/internal/surface"
)

// CardSize is the width and height of a card news image.
const CardSize = 1080

// TextShadow is used for card text when the setting enables shadows.
var TextShadow = surface.Shadow{Color: color.NRGBA{A: 128}, Blur: 4, OffsetX: 2, OffsetY: 2}

type textStyle struct {
	font   string
	size   float64
	weight fonts.Weight
	color  color.NRGBA
}

func resolve(ts setting.TextStyle) (textStyle, error) {
	w, err := ts.Weight()
	if err != nil {
		return textStyle{}, err
	}
	c, err := ts.TextColor.Parse()
	if err != nil {
		return textStyle{}, err
	}
	return textStyle{font: ts.Font, size: ts.TextSize, weight: w, color: c}, nil
}

func (ts textStyle) apply(s surface.Surface) error {
	if err := s.SetFont(ts.font, ts.size, ts.weight); err != nil {
		return err
	}
	s.SetFillColor(ts.color)
	return nil
}

// RenderCard paints one card onto s: the background (image or color), the
// optional footer QR code, then the title and content lines.
//
// Horizontal alignment comes from the title style and is shared by every
// line. The block's vertical alignment comes from the title style, or from
// the content style when the card has no title.
func RenderCard(ctx context.Context, s surface.Surface, st setting.RenderSetting, card cards.Card) error {
	if err := st.Validate(); err != nil {
		return fmt.Errorf("page %d: %w", card.PageIndex, err)
	}
	title, err := resolve(st.TitleTextStyle)
	if err != nil {
		return err
	}
	content, err := resolve(st.ContentTextStyle)
	if err != nil {
		return err
	}
	bg, _ := st.BackgroundColor.Parse()

	if err := paintBackground(ctx, s, st.BackgroundImage, st.BackgroundImageOpacity, bg); err != nil {
		return err
	}
	if st.FooterQR != "" {
		if err := drawFooterQR(s, st.FooterQR); err != nil {
			slog.Warn("footer QR skipped", "page", card.PageIndex, "error", err)
		}
	}

	s.SetGlobalAlpha(1)
	s.SetTextBaseline(surface.BaselineTop)
	stroke := st.TextStrokeSize > 0
	if stroke {
		sc, _ := st.TextStrokeColor.Parse()
		s.SetStroke(sc, st.TextStrokeSize)
	} else {
		s.SetStroke(nil, 0)
	}
	if st.TextShadow {
		s.SetShadow(TextShadow)
	} else {
		s.SetShadow(surface.Shadow{})
	}

	if card.Title == "" && card.Content == "" {
		return nil
	}

	width, height := float64(s.Width()), float64(s.Height())
	lines := splitLines(card.Content)
	x, align := anchorX(st.TitleTextStyle.TextHorizontalAlign, width)
	s.SetTextAlign(align)

	valign := st.ContentTextStyle.TextVerticalAlign
	if card.Title != "" {
		valign = st.TitleTextStyle.TextVerticalAlign
	}

	blockHeight := 0.0
	if card.Content != "" {
		if err := content.apply(s); err != nil {
			return err
		}
		blockHeight = contentHeight(s, lines)
	}
	y := baseY(valign, height, blockHeight)

	if card.Title != "" {
		if err := title.apply(s); err != nil {
			return err
		}
		th := s.MeasureText(card.Title).Height()
		y += titleShift(valign, th)
		drawText(s, card.Title, x, y, stroke)
		y += th
	}

	if card.Content != "" {
		if err := content.apply(s); err != nil {
			return err
		}
		for _, line := range lines {
			y += LineMargin
			drawText(s, line, x, y, stroke)
			y += s.MeasureText(line).Height()
		}
	}
	return nil
}

func drawText(s surface.Surface, text string, x, y float64, stroke bool) {
	s.FillText(text, x, y)
	if stroke {
		s.StrokeText(text, x, y)
	}
}

// paintBackground draws bmp over the whole surface at opacity. Without a
// bitmap, or when its decode failed, the surface is filled with bg instead.
// It only returns an error when ctx ends while waiting for the decode.
func paintBackground(ctx context.Context, s surface.Surface, bmp *bitmap.Bitmap, opacity float64, bg color.Color) error {
	w, h := s.Width(), s.Height()
	if bmp != nil {
		img, err := bmp.Wait(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err == nil {
			s.SetGlobalAlpha(opacity)
			s.DrawImage(img, 0, 0, w, h)
			s.SetGlobalAlpha(1)
			return nil
		}
		slog.Warn("background image unavailable, falling back to color", "bitmap", bmp.Key(), "error", err)
	}
	s.SetGlobalAlpha(1)
	s.FillRect(0, 0, float64(w), float64(h), bg)
	return nil
}
