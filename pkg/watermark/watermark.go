// Package watermark overlays repeated or centered text watermarks onto raster
// images.
//
// A watermark is produced in four steps: the text is rendered into a glyph
// layer cropped to its ink, the layer's alpha is scaled by the configured
// opacity, copies are laid out according to the style, and the result is
// rotated and alpha-composited onto a copy of the source image. The source is
// never modified.
package watermark

import (
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"
)

// Compositor runs the watermark pipeline. It holds no per-call state and is
// safe for concurrent use.
type Compositor struct {
	rasterizer TextRasterizer
	logger     *zap.Logger
}

type Option func(*Compositor)

func WithRasterizer(r TextRasterizer) Option {
	return func(c *Compositor) {
		if r != nil {
			c.rasterizer = r
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Compositor) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewCompositor(opts ...Option) *Compositor {
	c := &Compositor{
		rasterizer: NewOpenTypeRasterizer(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCompositor = NewCompositor()

// Produce watermarks src with the default compositor.
func Produce(cfg Config, src image.Image) (*image.RGBA, error) {
	return defaultCompositor.Produce(cfg, src)
}

// Produce returns a watermarked RGBA copy of src with the same size.
func (c *Compositor) Produce(cfg Config, src image.Image) (*image.RGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: source image is nil", ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fill, err := ParseColor(cfg.Color)
	if err != nil {
		return nil, err
	}

	glyph, err := c.glyphLayer(cfg, fill)
	if err != nil {
		return nil, err
	}
	if err := ApplyOpacity(glyph, cfg.Opacity); err != nil {
		return nil, err
	}

	if isEmpty(glyph) {
		c.logger.Warn("watermark text rendered nothing; returning source unchanged",
			zap.String("text", cfg.Text),
			zap.String("style", cfg.Style.String()),
		)
		return toRGBA(src), nil
	}

	layout := LayoutFor(cfg.Style)
	b := src.Bounds()
	mode := cfg.ResolvedMode()

	c.logger.Debug("compositing watermark",
		zap.String("style", cfg.Style.String()),
		zap.String("mode", mode.String()),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
		zap.Int("glyph_width", glyph.Bounds().Dx()),
		zap.Int("glyph_height", glyph.Bounds().Dy()),
	)

	if mode == ModeRotateTiles {
		return compositeTiles(src, glyph, layout, cfg.Angle, cfg.Space), nil
	}
	canvas := BuildWorkingCanvas(glyph, layout, CanvasSide(b.Dx(), b.Dy()), cfg.Space)
	return compositeCanvas(src, canvas, cfg.Angle), nil
}

func (c *Compositor) glyphLayer(cfg Config, fill color.Color) (*image.NRGBA, error) {
	face, err := c.rasterizer.LoadFont(cfg.FontPath, float64(cfg.Size))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := face.Close(); err != nil {
			c.logger.Warn("failed to close font face", zap.Error(err))
		}
	}()

	return BuildGlyphLayer(c.rasterizer, face, cfg.Text, GlyphOptions{
		Wrap:          cfg.Style != StyleStriped && cfg.CharsPerLine > 0,
		CharsPerLine:  cfg.CharsPerLine,
		LineSpacing:   cfg.LineSpacing,
		Color:         fill,
		LineHeightCap: float64(cfg.Size) * cfg.FontHeightCrop,
	}), nil
}
