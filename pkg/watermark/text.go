package watermark

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextRasterizer loads font faces and measures and draws multi-line text.
type TextRasterizer interface {
	// LoadFont opens the face at path; an empty path selects a built-in face.
	// The caller closes the returned face.
	LoadFont(path string, size float64) (font.Face, error)
	MeasureMultiline(face font.Face, text string, lineSpacing int) image.Point
	DrawMultiline(dst draw.Image, origin image.Point, face font.Face, text string, c color.Color, lineSpacing int)
}

// OpenTypeRasterizer renders TrueType and OpenType fonts through x/image.
// At the default 72 DPI a point size equals a pixel size.
type OpenTypeRasterizer struct {
	DPI     float64
	Hinting font.Hinting
}

func NewOpenTypeRasterizer() *OpenTypeRasterizer {
	return &OpenTypeRasterizer{DPI: 72, Hinting: font.HintingFull}
}

func (r *OpenTypeRasterizer) LoadFont(path string, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: font size %v must be positive", ErrInvalidArgument, size)
	}

	data := goregular.TTF
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFontLoad, err)
		}
		data = raw
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %q: %w", ErrFontLoad, path, err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     r.DPI,
		Hinting: r.Hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontLoad, err)
	}
	return face, nil
}

// MeasureMultiline returns the box that DrawMultiline fills when drawing text
// at the origin: the widest line by the number of lines stacked at
// lineHeight+lineSpacing.
func (r *OpenTypeRasterizer) MeasureMultiline(face font.Face, text string, lineSpacing int) image.Point {
	if text == "" {
		return image.Point{}
	}
	lines := strings.Split(text, "\n")
	width := 0
	for _, line := range lines {
		bounds, advance := font.BoundString(face, line)
		width = max(width, advance.Ceil(), bounds.Max.X.Ceil())
	}
	n := len(lines)
	return image.Pt(width, n*lineHeight(face)+(n-1)*lineSpacing)
}

func (r *OpenTypeRasterizer) DrawMultiline(dst draw.Image, origin image.Point, face font.Face, text string, c color.Color, lineSpacing int) {
	if text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	ascent := face.Metrics().Ascent
	pitch := lineHeight(face) + lineSpacing
	for i, line := range strings.Split(text, "\n") {
		d.Dot = fixed.Point26_6{
			X: fixed.I(origin.X),
			Y: fixed.I(origin.Y+i*pitch) + ascent,
		}
		d.DrawString(line)
	}
}

func lineHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}
