package models

import "time"

type ProcessedImage struct {
	ID          string    `json:"id"`
	Data        []byte    `json:"-"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Format      string    `json:"format"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	ProcessedAt time.Time `json:"processed_at"`
}
