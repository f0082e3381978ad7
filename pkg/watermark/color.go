package watermark

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor accepts an SVG/CSS colour name such as "red" or "white", or any
// form ParseHexColor accepts.
func ParseColor(s string) (color.NRGBA, error) {
	if c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return ParseHexColor(s)
}

// ParseHexColor accepts #rgb, #rrggbb and #rrggbbaa, with or without the
// leading '#'.
func ParseHexColor(s string) (color.NRGBA, error) {
	str := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(str) {
	case 3:
		str = string([]byte{str[0], str[0], str[1], str[1], str[2], str[2]})
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("%w: invalid color format %q", ErrInvalidArgument, s)
	}
	if len(str) == 6 {
		str += "ff"
	}

	v, err := strconv.ParseUint(str, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: invalid color %q", ErrInvalidArgument, s)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
