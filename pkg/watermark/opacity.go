package watermark

import (
	"fmt"
	"image"
	"math"
)

// ApplyOpacity multiplies the alpha of every pixel of layer by factor, in place.
func ApplyOpacity(layer *image.NRGBA, factor float64) error {
	if factor < 0 || factor > 1 || math.IsNaN(factor) {
		return fmt.Errorf("%w: opacity %v must be within [0, 1]", ErrInvalidArgument, factor)
	}
	if factor == 1 {
		return nil
	}
	b := layer.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := layer.Pix[layer.PixOffset(b.Min.X, y):layer.PixOffset(b.Max.X, y)]
		for i := 3; i < len(row); i += 4 {
			row[i] = uint8(math.Round(float64(row[i]) * factor))
		}
	}
	return nil
}
