package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/phambaophuc/image-watermark/pkg/utils"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Watermark WatermarkConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	MaxFileSize int64
	// AllowedTypes are the input MIME types accepted for watermarking.
	AllowedTypes  []string
	CacheDuration time.Duration
}

// WatermarkConfig holds the defaults applied to fields a request leaves out.
type WatermarkConfig struct {
	FontPath     string
	Style        string
	Mode         string
	Angle        float64
	Color        string
	Opacity      float64
	Size         int
	Space        int
	CharsPerLine int
	Quality      int
	Format       string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("WRITE_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			MaxFileSize:   getEnvAsInt64("MAX_FILE_SIZE", 10*1024*1024), // 10MB
			AllowedTypes:  getEnvAsSlice("ALLOWED_TYPES", utils.DefaultAllowedTypes),
			CacheDuration: getDuration("CACHE_DURATION", 24*time.Hour),
		},
		Watermark: WatermarkConfig{
			FontPath:     getEnv("WATERMARK_FONT_PATH", ""),
			Style:        getEnv("WATERMARK_STYLE", "striped"),
			Mode:         getEnv("WATERMARK_MODE", "auto"),
			Angle:        getEnvAsFloat("WATERMARK_ANGLE", 30),
			Color:        getEnv("WATERMARK_COLOR", "#936"),
			Opacity:      getEnvAsFloat("WATERMARK_OPACITY", 0.15),
			Size:         getEnvAsInt("WATERMARK_SIZE", 50),
			Space:        getEnvAsInt("WATERMARK_SPACE", 75),
			CharsPerLine: getEnvAsInt("WATERMARK_CHARS_PER_LINE", 8),
			Quality:      getEnvAsInt("WATERMARK_QUALITY", 80),
			Format:       getEnv("WATERMARK_FORMAT", "png"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

func getEnvAsSlice(key string, defaultVal []string) []string {
	if value := os.Getenv(key); value != "" {
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			return items
		}
	}
	return append([]string(nil), defaultVal...)
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}
