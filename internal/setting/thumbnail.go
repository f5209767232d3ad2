package setting

import (
	"fmt"

	"github.com/youruser/cardtoolkit/internal/fonts"
)

// ThumbnailStyle configures the single text block of a thumbnail.
type ThumbnailStyle struct {
	Font            string  `json:"font"`
	TextSize        float64 `json:"textSize"`
	TextColor       Color   `json:"textColor"`
	TextThickness   string  `json:"textThickness"`
	TextStrokeSize  float64 `json:"textStrokeSize"`
	TextStrokeColor Color   `json:"textStrokeColor"`
	ImageOpacity    float64 `json:"imageOpacity"`
	TextHighlight   bool    `json:"textHighlight"`
	// BackgroundColor is painted only when there is no usable image.
	BackgroundColor Color `json:"backgroundColor"`
}

// DefaultThumbnail returns 20px white Arial on an opaque image.
func DefaultThumbnail() ThumbnailStyle {
	return ThumbnailStyle{
		Font:            fonts.DefaultFamily,
		TextSize:        20,
		TextColor:       "white",
		TextThickness:   "normal",
		TextStrokeColor: "black",
		ImageOpacity:    1,
		BackgroundColor: "black",
	}
}

func (s ThumbnailStyle) WithFont(font string) ThumbnailStyle {
	s.Font = font
	return s
}

func (s ThumbnailStyle) WithText(size float64, c Color, thickness string) ThumbnailStyle {
	s.TextSize, s.TextColor, s.TextThickness = size, c, thickness
	return s
}

func (s ThumbnailStyle) WithStroke(size float64, c Color) ThumbnailStyle {
	s.TextStrokeSize, s.TextStrokeColor = size, c
	return s
}

func (s ThumbnailStyle) WithImageOpacity(opacity float64) ThumbnailStyle {
	s.ImageOpacity = opacity
	return s
}

func (s ThumbnailStyle) WithHighlight(on bool) ThumbnailStyle {
	s.TextHighlight = on
	return s
}

func (s ThumbnailStyle) WithBackgroundColor(c Color) ThumbnailStyle {
	s.BackgroundColor = c
	return s
}

func (s ThumbnailStyle) Weight() (fonts.Weight, error) {
	return fonts.ParseWeight(s.TextThickness)
}

func (s ThumbnailStyle) Validate() error {
	if s.TextSize <= 0 {
		return fmt.Errorf("%w: text size must be positive, got %v", ErrInvalid, s.TextSize)
	}
	if _, err := s.TextColor.Parse(); err != nil {
		return fmt.Errorf("text color: %w", err)
	}
	if _, err := s.Weight(); err != nil {
		return fmt.Errorf("%w: thickness: %v", ErrInvalid, err)
	}
	if s.TextStrokeSize < 0 {
		return fmt.Errorf("%w: stroke size must not be negative, got %v", ErrInvalid, s.TextStrokeSize)
	}
	if s.TextStrokeSize > 0 {
		if _, err := s.TextStrokeColor.Parse(); err != nil {
			return fmt.Errorf("stroke color: %w", err)
		}
	}
	if s.ImageOpacity < 0 || s.ImageOpacity > 1 {
		return fmt.Errorf("%w: image opacity %v outside [0,1]", ErrInvalid, s.ImageOpacity)
	}
	if _, err := s.BackgroundColor.Parse(); err != nil {
		return fmt.Errorf("background color: %w", err)
	}
	return nil
}
