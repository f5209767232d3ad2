package setting

import (
	"errors"
	"fmt"

	"github.com/youruser/cardtoolkit/internal/fonts"
)

// ErrInvalid wraps every validation failure in this package.
var ErrInvalid = errors.New("invalid setting")

type HorizontalAlign string

const (
	AlignLeft   HorizontalAlign = "left"
	AlignCenter HorizontalAlign = "center"
	AlignRight  HorizontalAlign = "right"
)

func (a HorizontalAlign) valid() bool {
	return a == AlignLeft || a == AlignCenter || a == AlignRight
}

type VerticalAlign string

const (
	AlignTop    VerticalAlign = "top"
	AlignMiddle VerticalAlign = "middle"
	AlignBottom VerticalAlign = "bottom"
)

func (a VerticalAlign) valid() bool {
	return a == AlignTop || a == AlignMiddle || a == AlignBottom
}

// TextStyle describes how one block of text (title or content) is drawn.
type TextStyle struct {
	Font                string          `json:"font"`
	TextColor           Color           `json:"textColor"`
	TextSize            float64         `json:"textSize"`
	TextThickness       string          `json:"textThickness"`
	TextHorizontalAlign HorizontalAlign `json:"textHorizontalAlign"`
	TextVerticalAlign   VerticalAlign   `json:"textVerticalAlign"`
}

func (s TextStyle) WithFont(font string) TextStyle {
	s.Font = font
	return s
}

func (s TextStyle) WithColor(c Color) TextStyle {
	s.TextColor = c
	return s
}

func (s TextStyle) WithSize(px float64) TextStyle {
	s.TextSize = px
	return s
}

func (s TextStyle) WithThickness(token string) TextStyle {
	s.TextThickness = token
	return s
}

func (s TextStyle) WithHorizontalAlign(a HorizontalAlign) TextStyle {
	s.TextHorizontalAlign = a
	return s
}

func (s TextStyle) WithVerticalAlign(a VerticalAlign) TextStyle {
	s.TextVerticalAlign = a
	return s
}

// Weight resolves the thickness token.
func (s TextStyle) Weight() (fonts.Weight, error) {
	return fonts.ParseWeight(s.TextThickness)
}

// Validate reports the first problem found in s. name prefixes the message.
func (s TextStyle) Validate(name string) error {
	if s.TextSize <= 0 {
		return fmt.Errorf("%w: %s text size must be positive, got %v", ErrInvalid, name, s.TextSize)
	}
	if _, err := s.TextColor.Parse(); err != nil {
		return fmt.Errorf("%s text color: %w", name, err)
	}
	if _, err := s.Weight(); err != nil {
		return fmt.Errorf("%w: %s thickness: %v", ErrInvalid, name, err)
	}
	if !s.TextHorizontalAlign.valid() {
		return fmt.Errorf("%w: %s horizontal align %q", ErrInvalid, name, s.TextHorizontalAlign)
	}
	if !s.TextVerticalAlign.valid() {
		return fmt.Errorf("%w: %s vertical align %q", ErrInvalid, name, s.TextVerticalAlign)
	}
	return nil
}
