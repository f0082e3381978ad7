package watermark

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/image/font"
)

func opaqueSource(w, h int) *image.NRGBA {
	return solidNRGBA(w, h, color.NRGBA{R: 240, G: 240, B: 240, A: 255})
}

// changedPixels counts positions where a and b differ, each read relative to
// its own top-left corner.
func changedPixels(a, b image.Image) int {
	ab, bb := a.Bounds(), b.Bounds()
	n := 0
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			ca := color.RGBA64Model.Convert(a.At(ab.Min.X+x, ab.Min.Y+y))
			cb := color.RGBA64Model.Convert(b.At(bb.Min.X+x, bb.Min.Y+y))
			if ca != cb {
				n++
			}
		}
	}
	return n
}

func TestProduce_CentralEndToEnd(t *testing.T) {
	src := opaqueSource(200, 100)
	cfg := DefaultConfig()
	cfg.Text = "X"
	cfg.Style = StyleCentral
	cfg.Opacity = 0.5
	cfg.Angle = 0

	out, err := Produce(cfg, src)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 200, 100), out.Bounds())

	center := out.RGBAAt(100, 50)
	assert.NotEqual(t, color.RGBA{R: 240, G: 240, B: 240, A: 255}, center, "watermark visible at the center")

	for _, p := range []image.Point{{0, 0}, {199, 0}, {0, 99}, {199, 99}, {5, 5}, {194, 94}} {
		assert.Equal(t, color.RGBA{R: 240, G: 240, B: 240, A: 255}, out.RGBAAt(p.X, p.Y), "corner %v", p)
	}
}

func TestProduce_StripedCoversImage(t *testing.T) {
	src := opaqueSource(400, 300)
	cfg := DefaultConfig()
	cfg.Text = "sample"
	cfg.Opacity = 1
	cfg.Size = 24
	cfg.Space = 10

	out, err := Produce(cfg, src)
	require.NoError(t, err)

	quadrants := []image.Rectangle{
		image.Rect(0, 0, 200, 150), image.Rect(200, 0, 400, 150),
		image.Rect(0, 150, 200, 300), image.Rect(200, 150, 400, 300),
	}
	for _, q := range quadrants {
		assert.Positive(t, changedPixels(src.SubImage(q), out.SubImage(q)), "quadrant %v", q)
	}
}

func TestProduce_GridTilesMode(t *testing.T) {
	src := opaqueSource(300, 120)
	cfg := DefaultConfig()
	cfg.Text = "AB"
	cfg.Style = StyleGrid
	cfg.Angle = 0
	cfg.Opacity = 1
	cfg.Size = 30
	cfg.Space = 10

	out, err := Produce(cfg, src)
	require.NoError(t, err)

	left := image.Rect(0, 0, 60, 120)
	right := image.Rect(240, 0, 300, 120)
	assert.Positive(t, changedPixels(src.SubImage(left), out.SubImage(left)))
	assert.Positive(t, changedPixels(src.SubImage(right), out.SubImage(right)))
}

func TestProduce_ModeIsOrthogonalToStyle(t *testing.T) {
	src := opaqueSource(160, 120)
	for _, style := range []Style{StyleStriped, StyleCentral, StyleGrid} {
		for _, mode := range []CompositingMode{ModeRotateCanvas, ModeRotateTiles} {
			cfg := DefaultConfig()
			cfg.Text = "mark"
			cfg.Style = style
			cfg.Mode = mode
			cfg.Opacity = 0.8
			cfg.Size = 20

			out, err := Produce(cfg, src)
			require.NoError(t, err, "%s/%s", style, mode)
			assert.Equal(t, src.Bounds(), out.Bounds())
			assert.Positive(t, changedPixels(src, out), "%s/%s", style, mode)
		}
	}
}

func TestProduce_EmptyTextLeavesSource(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := NewCompositor(WithLogger(zap.New(core)))
	src := opaqueSource(50, 40)

	for _, style := range []Style{StyleStriped, StyleCentral, StyleGrid} {
		cfg := DefaultConfig()
		cfg.Style = style
		cfg.Text = ""

		out, err := c.Produce(cfg, src)
		require.NoError(t, err)
		assert.Zero(t, changedPixels(src, out))
	}
	assert.Equal(t, 3, logs.FilterMessageSnippet("rendered nothing").Len())
}

func TestProduce_ZeroOpacityIsInvisible(t *testing.T) {
	src := opaqueSource(80, 80)
	cfg := DefaultConfig()
	cfg.Text = "hidden"
	cfg.Opacity = 0

	out, err := Produce(cfg, src)
	require.NoError(t, err)
	assert.Zero(t, changedPixels(src, out))
}

func TestProduce_Errors(t *testing.T) {
	src := opaqueSource(10, 10)

	cfg := DefaultConfig()
	cfg.Text = "x"
	cfg.Opacity = 2
	_, err := Produce(cfg, src)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	cfg = DefaultConfig()
	cfg.Text = "x"
	cfg.FontPath = "/definitely/missing.ttf"
	_, err = Produce(cfg, src)
	assert.ErrorIs(t, err, ErrFontLoad)

	_, err = Produce(DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

type closeCounter struct {
	font.Face
	closed *int
}

func (c closeCounter) Close() error {
	*c.closed++
	return c.Face.Close()
}

type countingRasterizer struct {
	*OpenTypeRasterizer
	closed int
}

func (r *countingRasterizer) LoadFont(path string, size float64) (font.Face, error) {
	face, err := r.OpenTypeRasterizer.LoadFont(path, size)
	if err != nil {
		return nil, err
	}
	return closeCounter{Face: face, closed: &r.closed}, nil
}

func TestCompositor_ClosesFontFace(t *testing.T) {
	r := &countingRasterizer{OpenTypeRasterizer: NewOpenTypeRasterizer()}
	c := NewCompositor(WithRasterizer(r))

	cfg := DefaultConfig()
	cfg.Text = "closed"
	_, err := c.Produce(cfg, opaqueSource(30, 30))
	require.NoError(t, err)

	cfg.Text = ""
	_, err = c.Produce(cfg, opaqueSource(30, 30))
	require.NoError(t, err)

	assert.Equal(t, 2, r.closed)
}
