package watermark

import (
	"image"
	"math"
)

// Layout computes where copies of a glyph of the given size go inside an
// area. Points are top-left corners and may lie partly outside the area.
type Layout interface {
	Placements(area, glyph image.Point, spacing int) []image.Point
}

// StripedLayout repeats the glyph in rows, shifting every other row left by
// half a column pitch so the copies form a brick pattern.
type StripedLayout struct{}

func (StripedLayout) Placements(area, glyph image.Point, spacing int) []image.Point {
	if glyph.X <= 0 || glyph.Y <= 0 {
		return nil
	}
	pitchX, pitchY := glyph.X+spacing, glyph.Y+spacing
	if pitchX <= 0 || pitchY <= 0 {
		return nil
	}

	var pts []image.Point
	for y, row := 0, 0; y < area.Y; y, row = y+pitchY, row+1 {
		x := -int(float64(pitchX) * 0.5 * float64(row%2))
		for ; x < area.X; x += pitchX {
			pts = append(pts, image.Pt(x, y))
		}
	}
	return pts
}

// CentralLayout places a single glyph in the middle of the area.
type CentralLayout struct{}

func (CentralLayout) Placements(area, glyph image.Point, _ int) []image.Point {
	if glyph.X <= 0 || glyph.Y <= 0 {
		return nil
	}
	return []image.Point{{X: (area.X - glyph.X) / 2, Y: (area.Y - glyph.Y) / 2}}
}

// GridLayout repeats the glyph column by column from the top-left corner
// without any stagger.
type GridLayout struct{}

func (GridLayout) Placements(area, glyph image.Point, spacing int) []image.Point {
	if glyph.X <= 0 || glyph.Y <= 0 {
		return nil
	}
	pitchX, pitchY := glyph.X+spacing, glyph.Y+spacing
	if pitchX <= 0 || pitchY <= 0 {
		return nil
	}

	var pts []image.Point
	for x := 0; x < area.X; x += pitchX {
		for y := 0; y < area.Y; y += pitchY {
			pts = append(pts, image.Pt(x, y))
		}
	}
	return pts
}

// LayoutFor returns the layout implementing style.
func LayoutFor(style Style) Layout {
	switch style {
	case StyleCentral:
		return CentralLayout{}
	case StyleGrid:
		return GridLayout{}
	default:
		return StripedLayout{}
	}
}

// CanvasSide is the side of a square that covers a w×h image at any rotation
// about its center: the ceiling of the image diagonal. Rotation filters the
// canvas edge, so on images of a pixel or two a corner may only be partly
// covered.
func CanvasSide(w, h int) int {
	return int(math.Ceil(math.Hypot(float64(w), float64(h))))
}

// BuildWorkingCanvas lays glyph out on a transparent side×side canvas.
// Copies replace the canvas pixels they cover.
func BuildWorkingCanvas(glyph *image.NRGBA, layout Layout, side, spacing int) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, side, side))
	if isEmpty(glyph) {
		return canvas
	}
	for _, pt := range layout.Placements(canvas.Bounds().Size(), glyph.Bounds().Size(), spacing) {
		paste(canvas, glyph, pt)
	}
	return canvas
}

// paste copies src into dst with its top-left corner at pt, clipped to dst.
func paste(dst, src *image.NRGBA, pt image.Point) {
	sb := src.Bounds()
	r := image.Rectangle{Min: pt, Max: pt.Add(sb.Size())}.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	sp := sb.Min.Add(r.Min.Sub(pt))
	n := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		di := dst.PixOffset(r.Min.X, r.Min.Y+y)
		si := src.PixOffset(sp.X, sp.Y+y)
		copy(dst.Pix[di:di+n], src.Pix[si:si+n])
	}
}
