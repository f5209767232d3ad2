package setting

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is a CSS style color: "#rgb", "#rrggbb", "#rrggbbaa", a color name
// such as "white", or "transparent".
type Color string

// Parse resolves c to a non-premultiplied RGBA value.
func (c Color) Parse() (color.NRGBA, error) {
	s := strings.ToLower(strings.TrimSpace(string(c)))
	switch {
	case s == "":
		return color.NRGBA{}, fmt.Errorf("%w: empty color", ErrInvalid)
	case s == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	}
	if rgba, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: unknown color %q", ErrInvalid, string(c))
}

func parseHex(s string) (color.NRGBA, error) {
	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: bad alpha in %q", ErrInvalid, s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalid, s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
