package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultAllowedTypes lists every input type the decoders registered here
// can read.
var DefaultAllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/bmp",
	"image/tiff",
}

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// DownloadImage fetches an http(s) imageURL, reading at most maxSize+1 bytes
// so callers can detect oversized sources.
func DownloadImage(ctx context.Context, imageURL string, maxSize int64) ([]byte, string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid image url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", fmt.Errorf("unsupported url scheme %q: only http and https are allowed", u.Scheme)
	}
	if u.Host == "" {
		return nil, "", errors.New("invalid image url: missing host")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image data: %w", err)
	}

	if len(imageData) == 0 {
		return nil, "", errors.New("empty image data")
	}

	contentType, err := SniffImageType(imageData)
	if err != nil {
		return nil, "", err
	}
	if !IsValidImageType(contentType) {
		return nil, "", fmt.Errorf("invalid content type: %s", contentType)
	}

	return imageData, contentType, nil
}

// SniffImageType decodes only the image header and returns its MIME type,
// e.g. "image/tiff".
func SniffImageType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("unrecognized image format: %w", err)
	}
	return "image/" + format, nil
}

// IsValidImageType checks contentType against allowed, or against
// DefaultAllowedTypes when allowed is empty.
func IsValidImageType(contentType string, allowed ...string) bool {
	if len(allowed) == 0 {
		allowed = DefaultAllowedTypes
	}

	ct := strings.ToLower(contentType)
	for _, validType := range allowed {
		if strings.Contains(ct, strings.ToLower(validType)) {
			return true
		}
	}
	return false
}

// GenerateFilename generates a unique filename for a watermarked image
func GenerateFilename(requestID, format string) string {
	timestamp := time.Now().Unix()
	if format == "" {
		format = "png"
	}
	if requestID == "" {
		requestID = "image"
	}
	return fmt.Sprintf("watermarked_%s_%d.%s", requestID, timestamp, format)
}
