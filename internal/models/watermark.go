package models

// WatermarkRequest is bound from the multipart form of a watermark request.
// Pointer fields are optional and fall back to the server defaults.
type WatermarkRequest struct {
	Text           string   `form:"text" binding:"required"`
	ImageURL       string   `form:"image_url" binding:"omitempty,url"`
	Style          string   `form:"style" binding:"omitempty,oneof=striped stripe central center grid multiple"`
	Mode           string   `form:"mode" binding:"omitempty,oneof=auto canvas tiles"`
	Angle          *float64 `form:"angle"`
	Color          string   `form:"color"`
	Opacity        *float64 `form:"opacity" binding:"omitempty,min=0,max=1"`
	Size           *int     `form:"size" binding:"omitempty,min=1,max=2000"`
	Space          *int     `form:"space" binding:"omitempty,min=0"`
	CharsPerLine   *int     `form:"chars_per_line" binding:"omitempty,min=0"`
	FontHeightCrop *float64 `form:"font_height_crop" binding:"omitempty,min=0"`
	Quality        *int     `form:"quality" binding:"omitempty,min=1,max=100"`
	Format         string   `form:"format" binding:"omitempty,oneof=png jpeg jpg gif bmp tiff"`
}
