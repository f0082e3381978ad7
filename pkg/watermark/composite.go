package watermark

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Origin is where a side×side canvas goes so that its center meets the center
// of a w×h image. Halves truncate toward zero.
func Origin(w, h, side int) image.Point {
	return image.Pt((w-side)/2, (h-side)/2)
}

// rotateCanvas rotates canvas counter-clockwise by angle degrees about its
// center and keeps the original size, clipping the corners that swing out.
func rotateCanvas(canvas *image.NRGBA, angle float64) *image.NRGBA {
	rotated := imaging.Rotate(canvas, angle, color.Transparent)
	size := canvas.Bounds().Size()
	if rotated.Bounds().Size() == size {
		return rotated
	}
	return imaging.CropCenter(rotated, size.X, size.Y)
}

// toRGBA copies src into a new RGBA image anchored at the origin.
func toRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// overlay alpha-composites layer onto dst with its top-left corner at pt.
// Fully transparent layer pixels leave dst untouched.
func overlay(dst *image.RGBA, layer image.Image, pt image.Point) {
	lb := layer.Bounds()
	r := image.Rectangle{Min: pt, Max: pt.Add(lb.Size())}
	draw.Draw(dst, r, layer, lb.Min, draw.Over)
}

// compositeCanvas rotates the working canvas once and blends it over a copy of
// src, centered.
func compositeCanvas(src image.Image, canvas *image.NRGBA, angle float64) *image.RGBA {
	out := toRGBA(src)
	rotated := rotateCanvas(canvas, angle)
	b := out.Bounds()
	overlay(out, rotated, Origin(b.Dx(), b.Dy(), rotated.Bounds().Dx()))
	return out
}

// compositeTiles rotates the glyph once, with its bounds grown to fit, and
// blends a copy at every placement the layout yields over the source area.
func compositeTiles(src image.Image, glyph *image.NRGBA, layout Layout, angle float64, spacing int) *image.RGBA {
	out := toRGBA(src)
	if isEmpty(glyph) {
		return out
	}
	tile := imaging.Rotate(glyph, angle, color.Transparent)
	for _, pt := range layout.Placements(out.Bounds().Size(), tile.Bounds().Size(), spacing) {
		overlay(out, tile, pt)
	}
	return out
}
