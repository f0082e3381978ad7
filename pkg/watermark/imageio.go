package watermark

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Open decodes the image at path, applying its EXIF orientation.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageDecode, err)
	}
	return img, nil
}

// Decode reads an image from r, applying its EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageDecode, err)
	}
	return img, nil
}

// ParseFormat resolves a format name or file extension such as "png", ".jpg"
// or "tiff".
func ParseFormat(name string) (imaging.Format, error) {
	f, err := imaging.FormatFromExtension(name)
	if err != nil {
		return -1, fmt.Errorf("%w: unsupported image format %q", ErrInvalidArgument, name)
	}
	return f, nil
}

// Encode writes img to w. JPEG output is flattened onto white first since the
// format has no alpha channel.
func Encode(w io.Writer, img image.Image, format imaging.Format, quality int) error {
	if format == imaging.JPEG {
		img = flatten(img, color.White)
	}
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("%w: %w", ErrImageEncode, err)
	}
	return nil
}

// Save encodes img into the file at path, creating parent directories.
func Save(img image.Image, path string, format imaging.Format, quality int) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrImageEncode, err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrImageEncode, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrImageEncode, cerr)
		}
	}()
	return Encode(out, img, format, quality)
}

func flatten(img image.Image, bg color.Color) image.Image {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}
