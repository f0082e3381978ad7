package processor

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/phambaophuc/image-watermark/internal/config"
	"github.com/phambaophuc/image-watermark/internal/models"
	"github.com/phambaophuc/image-watermark/pkg/watermark"
	"go.uber.org/zap"
)

type ImageProcessor struct {
	compositor *watermark.Compositor
	defaults   config.WatermarkConfig
	logger     *zap.Logger
}

func NewImageProcessor(defaults config.WatermarkConfig, logger *zap.Logger) *ImageProcessor {
	return &ImageProcessor{
		compositor: watermark.NewCompositor(watermark.WithLogger(logger)),
		defaults:   defaults,
		logger:     logger,
	}
}

// ProcessImage decodes data, watermarks it with cfg and encodes the result.
func (p *ImageProcessor) ProcessImage(data []byte, cfg watermark.Config, format imaging.Format) (*models.ProcessedImage, error) {
	start := time.Now()

	img, err := watermark.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	marked, err := p.compositor.Produce(cfg, img)
	if err != nil {
		return nil, fmt.Errorf("failed to watermark image: %w", err)
	}

	buffer := &bytes.Buffer{}
	if err := p.encodeImage(buffer, marked, format, cfg.Quality); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := marked.Bounds()
	p.logger.Debug("Image watermarked",
		zap.String("style", cfg.Style.String()),
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()),
		zap.Int("bytes", buffer.Len()),
		zap.Duration("took", time.Since(start)),
	)

	return &models.ProcessedImage{
		ID:          uuid.New().String(),
		Data:        buffer.Bytes(),
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Format:      formatName(format),
		ContentType: ContentType(format),
		FileSize:    int64(buffer.Len()),
		ProcessedAt: time.Now(),
	}, nil
}

// ContentType returns the MIME type for an output format.
func ContentType(format imaging.Format) string {
	return "image/" + formatName(format)
}

func formatName(format imaging.Format) string {
	return strings.ToLower(format.String())
}
