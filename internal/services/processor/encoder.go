package processor

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/image-watermark/pkg/watermark"
)

const defaultQuality = 85

func (p *ImageProcessor) encodeImage(w io.Writer, img image.Image, format imaging.Format, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}
	return watermark.Encode(w, img, format, quality)
}
