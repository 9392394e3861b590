package imagepkg

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

var ErrInvalidColor = errors.New("invalid color")

// ParseColor accepts any CSS color: named colors, "transparent", hex with
// or without alpha, and the rgb(), hsl() and hwb() functional forms.
func ParseColor(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidColor)
	}
	c, err := csscolorparser.Parse(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b, a := c.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
