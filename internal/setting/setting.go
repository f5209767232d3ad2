package setting

import (
	"fmt"

	"github.com/youruser/cardtoolkit/internal/bitmap"
	"github.com/youruser/cardtoolkit/internal/fonts"
)

// RenderSetting is the style applied to every card of a deck. It is a
// value: the With* methods return modified copies and never touch the
// receiver, so a setting handed to a render call cannot change under it.
type RenderSetting struct {
	TitleTextStyle         TextStyle      `json:"titleTextStyle"`
	ContentTextStyle       TextStyle      `json:"contentTextStyle"`
	TextStrokeSize         float64        `json:"textStrokeSize"`
	TextStrokeColor        Color          `json:"textStrokeColor"`
	TextShadow             bool           `json:"textShadow"`
	BackgroundColor        Color          `json:"backgroundColor"`
	BackgroundImage        *bitmap.Bitmap `json:"-"`
	BackgroundImageOpacity float64        `json:"backgroundImageOpacity"`
	// FooterQR, when set, is encoded as a QR code in the bottom-right corner.
	FooterQR string `json:"footerQR,omitempty"`
}

// Default mirrors the card news page defaults: black text on white, left
// and top aligned, with a one pixel white outline.
func Default() RenderSetting {
	base := TextStyle{
		Font:                fonts.DefaultFamily,
		TextColor:           "black",
		TextThickness:       "normal",
		TextHorizontalAlign: AlignLeft,
		TextVerticalAlign:   AlignTop,
	}
	return RenderSetting{
		TitleTextStyle:         base.WithSize(64).WithThickness("bold"),
		ContentTextStyle:       base.WithSize(40),
		TextStrokeSize:         1,
		TextStrokeColor:        "white",
		BackgroundColor:        "white",
		BackgroundImageOpacity: 1,
	}
}

func (s RenderSetting) WithTitleStyle(ts TextStyle) RenderSetting {
	s.TitleTextStyle = ts
	return s
}

func (s RenderSetting) WithContentStyle(ts TextStyle) RenderSetting {
	s.ContentTextStyle = ts
	return s
}

// WithFont sets the font family of both title and content.
func (s RenderSetting) WithFont(font string) RenderSetting {
	s.TitleTextStyle = s.TitleTextStyle.WithFont(font)
	s.ContentTextStyle = s.ContentTextStyle.WithFont(font)
	return s
}

// WithHorizontalAlign sets the alignment of both styles. Only the title's
// alignment is used for layout, the content's is kept in step.
func (s RenderSetting) WithHorizontalAlign(a HorizontalAlign) RenderSetting {
	s.TitleTextStyle = s.TitleTextStyle.WithHorizontalAlign(a)
	s.ContentTextStyle = s.ContentTextStyle.WithHorizontalAlign(a)
	return s
}

func (s RenderSetting) WithVerticalAlign(a VerticalAlign) RenderSetting {
	s.TitleTextStyle = s.TitleTextStyle.WithVerticalAlign(a)
	s.ContentTextStyle = s.ContentTextStyle.WithVerticalAlign(a)
	return s
}

func (s RenderSetting) WithStroke(size float64, c Color) RenderSetting {
	s.TextStrokeSize = size
	s.TextStrokeColor = c
	return s
}

func (s RenderSetting) WithShadow(on bool) RenderSetting {
	s.TextShadow = on
	return s
}

func (s RenderSetting) WithBackgroundColor(c Color) RenderSetting {
	s.BackgroundColor = c
	return s
}

// WithBackgroundImage sets the background bitmap; nil clears it.
func (s RenderSetting) WithBackgroundImage(b *bitmap.Bitmap, opacity float64) RenderSetting {
	s.BackgroundImage = b
	s.BackgroundImageOpacity = opacity
	return s
}

func (s RenderSetting) WithFooterQR(text string) RenderSetting {
	s.FooterQR = text
	return s
}

func (s RenderSetting) Validate() error {
	if err := s.TitleTextStyle.Validate("title"); err != nil {
		return err
	}
	if err := s.ContentTextStyle.Validate("content"); err != nil {
		return err
	}
	if s.TextStrokeSize < 0 {
		return fmt.Errorf("%w: stroke size must not be negative, got %v", ErrInvalid, s.TextStrokeSize)
	}
	if s.TextStrokeSize > 0 {
		if _, err := s.TextStrokeColor.Parse(); err != nil {
			return fmt.Errorf("stroke color: %w", err)
		}
	}
	if _, err := s.BackgroundColor.Parse(); err != nil {
		return fmt.Errorf("background color: %w", err)
	}
	if s.BackgroundImageOpacity < 0 || s.BackgroundImageOpacity > 1 {
		return fmt.Errorf("%w: background image opacity %v outside [0,1]", ErrInvalid, s.BackgroundImageOpacity)
	}
	return nil
}
