package processor

import (
	"strings"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/image-watermark/internal/models"
	"github.com/phambaophuc/image-watermark/pkg/watermark"
)

// BuildConfig merges a request over the configured defaults and resolves the
// output format.
func (p *ImageProcessor) BuildConfig(req *models.WatermarkRequest) (watermark.Config, imaging.Format, error) {
	d := p.defaults
	cfg := watermark.DefaultConfig()
	cfg.Text = req.Text
	cfg.FontPath = d.FontPath
	cfg.Angle = d.Angle
	cfg.Color = d.Color
	cfg.Opacity = d.Opacity
	cfg.Size = d.Size
	cfg.Space = d.Space
	cfg.CharsPerLine = d.CharsPerLine
	cfg.Quality = d.Quality

	var err error
	if cfg.Style, err = watermark.ParseStyle(firstNonEmpty(req.Style, d.Style)); err != nil {
		return cfg, -1, err
	}
	if cfg.Mode, err = watermark.ParseMode(firstNonEmpty(req.Mode, d.Mode)); err != nil {
		return cfg, -1, err
	}
	if req.Color != "" {
		cfg.Color = req.Color
	}
	if req.Angle != nil {
		cfg.Angle = *req.Angle
	}
	if req.Opacity != nil {
		cfg.Opacity = *req.Opacity
	}
	if req.Size != nil {
		cfg.Size = *req.Size
	}
	if req.Space != nil {
		cfg.Space = *req.Space
	}
	if req.CharsPerLine != nil {
		cfg.CharsPerLine = *req.CharsPerLine
	}
	if req.FontHeightCrop != nil {
		cfg.FontHeightCrop = *req.FontHeightCrop
	}
	if req.Quality != nil {
		cfg.Quality = *req.Quality
	}

	format, err := watermark.ParseFormat(firstNonEmpty(req.Format, d.Format, "png"))
	if err != nil {
		return cfg, -1, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, -1, err
	}
	return cfg, format, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
