package watermark

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientLayer(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 10, B: 90, A: uint8((x*w + y) % 256)})
		}
	}
	return img
}

func TestApplyOpacity_ScalesAlpha(t *testing.T) {
	for _, factor := range []float64{0, 0.15, 0.5, 0.73, 1} {
		before := gradientLayer(16, 16)
		after := gradientLayer(16, 16)
		require.NoError(t, ApplyOpacity(after, factor))

		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				b, a := before.NRGBAAt(x, y), after.NRGBAAt(x, y)
				want := uint8(math.Round(float64(b.A) * factor))
				assert.Equal(t, want, a.A, "factor %v at %d,%d", factor, x, y)
				assert.Equal(t, [3]uint8{b.R, b.G, b.B}, [3]uint8{a.R, a.G, a.B}, "colour must not change")
			}
		}
	}
}

func TestApplyOpacity_TransparentStaysTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	require.NoError(t, ApplyOpacity(img, 0.5))
	for _, v := range img.Pix {
		assert.Zero(t, v)
	}
}

func TestApplyOpacity_OneIsNoOp(t *testing.T) {
	img := gradientLayer(8, 8)
	want := append([]uint8(nil), img.Pix...)
	require.NoError(t, ApplyOpacity(img, 1))
	assert.Equal(t, want, img.Pix)
}

func TestApplyOpacity_RejectsOutOfRange(t *testing.T) {
	img := gradientLayer(2, 2)
	for _, factor := range []float64{-0.01, 1.01, math.NaN()} {
		assert.ErrorIs(t, ApplyOpacity(img, factor), ErrInvalidArgument)
	}
}
