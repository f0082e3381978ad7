package processor

import (
	"fmt"

	"github.com/phambaophuc/image-watermark/pkg/utils"
	"github.com/phambaophuc/image-watermark/pkg/watermark"
)

// ValidateImage checks the size of data and that its decoded header names one
// of allowedTypes. An empty allowedTypes accepts every decodable type.
func (p *ImageProcessor) ValidateImage(data []byte, maxSize int64, allowedTypes []string) error {
	size := int64(len(data))
	if size == 0 {
		return fmt.Errorf("%w: empty image data", watermark.ErrImageDecode)
	}
	if size > maxSize {
		return fmt.Errorf("%w: file size %d exceeds maximum allowed size %d", watermark.ErrInvalidArgument, size, maxSize)
	}

	contentType, err := utils.SniffImageType(data)
	if err != nil {
		return fmt.Errorf("%w: %w", watermark.ErrImageDecode, err)
	}
	if !utils.IsValidImageType(contentType, allowedTypes...) {
		return fmt.Errorf("%w: unsupported content type %s", watermark.ErrImageDecode, contentType)
	}
	return nil
}
