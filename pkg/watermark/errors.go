package watermark

import "errors"

var (
	ErrImageDecode     = errors.New("image decode failed")
	ErrImageEncode     = errors.New("image encode failed")
	ErrFontLoad        = errors.New("font load failed")
	ErrInvalidArgument = errors.New("invalid argument")
)
