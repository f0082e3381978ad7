package watermark

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
)

// GlyphOptions controls how BuildGlyphLayer lays out the text.
type GlyphOptions struct {
	Wrap         bool
	CharsPerLine int
	LineSpacing  int
	Color        color.Color
	// LineHeightCap limits the rendered box to LineHeightCap pixels per line.
	// Zero leaves the measured height alone.
	LineHeightCap float64
}

// BuildGlyphLayer renders text into a transparent bitmap and crops it to the
// rendered pixels. Blank text yields an empty or fully transparent layer.
func BuildGlyphLayer(r TextRasterizer, face font.Face, text string, opts GlyphOptions) *image.NRGBA {
	if opts.Wrap {
		text = strings.Join(Wrap(text, opts.CharsPerLine), "\n")
	}

	size := r.MeasureMultiline(face, text, opts.LineSpacing)
	if opts.LineHeightCap > 0 && text != "" {
		lines := strings.Count(text, "\n") + 1
		if limit := int(math.Round(opts.LineHeightCap * float64(lines))); limit < size.Y {
			size.Y = limit
		}
	}

	layer := image.NewNRGBA(image.Rectangle{Max: size})
	if size.X <= 0 || size.Y <= 0 {
		return layer
	}
	c := opts.Color
	if c == nil {
		c = color.Black
	}
	r.DrawMultiline(layer, image.Point{}, face, text, c, opts.LineSpacing)
	return CropToContent(layer)
}

// CropToContent crops img to the smallest rectangle holding a pixel that is
// not fully transparent black. Without such a pixel img is returned as is.
func CropToContent(img *image.NRGBA) *image.NRGBA {
	bbox, ok := contentBounds(img)
	if !ok {
		return img
	}
	return imaging.Crop(img, bbox)
}

func contentBounds(img *image.NRGBA) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			if row[i]|row[i+1]|row[i+2]|row[i+3] == 0 {
				continue
			}
			x := b.Min.X + i/4
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

func isEmpty(img image.Image) bool {
	return img == nil || img.Bounds().Empty()
}
