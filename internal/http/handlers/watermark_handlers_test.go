package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-watermark/internal/config"
	"github.com/phambaophuc/image-watermark/internal/http/middleware"
	"github.com/phambaophuc/image-watermark/internal/models"
	"github.com/phambaophuc/image-watermark/internal/services/processor"
	"github.com/phambaophuc/image-watermark/pkg/watermark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{MaxFileSize: 1 << 20},
		Watermark: config.WatermarkConfig{
			Style:        "striped",
			Mode:         "auto",
			Angle:        30,
			Color:        "#936",
			Opacity:      0.15,
			Size:         50,
			Space:        75,
			CharsPerLine: 8,
			Quality:      80,
			Format:       "png",
		},
	}
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := testConfig()
	h := NewWatermarkHandler(processor.NewImageProcessor(cfg.Watermark, zap.NewNop()), nil, zap.NewNop(), cfg)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.POST("/watermark", h.Watermark)
	r.GET("/health", h.HealthCheck)
	r.GET("/stats", h.GetStats)
	return r
}

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 120, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 120; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 250, G: 250, B: 250, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, fields map[string]string, file []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		part, err := mw.CreateFormFile(imageParamKey, "source.png")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/watermark", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWatermark_Upload(t *testing.T) {
	r := newTestEngine(t)
	req := multipartRequest(t, map[string]string{
		"text":    "confidential",
		"style":   "central",
		"opacity": "1",
		"size":    "20",
		"angle":   "0",
	}, samplePNG(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".png")

	out, err := imaging.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 80), out.Bounds())

	changed := 0
	for y := 30; y < 50; y++ {
		for x := 20; x < 100; x++ {
			r0, g0, b0, _ := out.At(x, y).RGBA()
			if r0>>8 != 250 || g0>>8 != 250 || b0>>8 != 250 {
				changed++
			}
		}
	}
	assert.Positive(t, changed, "center carries the mark")
}

func TestWatermark_JPEGOutput(t *testing.T) {
	r := newTestEngine(t)
	req := multipartRequest(t, map[string]string{"text": "draft", "format": "jpg", "quality": "70"}, samplePNG(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".jpg")
}

func TestWatermark_BadRequests(t *testing.T) {
	cases := map[string]struct {
		fields map[string]string
		file   []byte
	}{
		"missing text":    {fields: map[string]string{}, file: samplePNG(t)},
		"missing image":   {fields: map[string]string{"text": "x"}},
		"bad style":       {fields: map[string]string{"text": "x", "style": "spiral"}, file: samplePNG(t)},
		"opacity too big": {fields: map[string]string{"text": "x", "opacity": "1.5"}, file: samplePNG(t)},
		"bad color":       {fields: map[string]string{"text": "x", "color": "blurple"}, file: samplePNG(t)},
		"not an image":    {fields: map[string]string{"text": "x"}, file: []byte("hello, world")},
	}

	r := newTestEngine(t)
	for name, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, multipartRequest(t, tc.fields, tc.file))

		assert.Equal(t, http.StatusBadRequest, w.Code, name)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success, name)
		assert.NotEmpty(t, resp.Error, name)
	}
}

func TestWatermark_MissingFontIsServerError(t *testing.T) {
	cfg := testConfig()
	cfg.Watermark.FontPath = "/no/such/font.ttf"
	h := NewWatermarkHandler(processor.NewImageProcessor(cfg.Watermark, zap.NewNop()), nil, zap.NewNop(), cfg)
	r := gin.New()
	r.POST("/watermark", h.Watermark)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, map[string]string{"text": "x"}, samplePNG(t)))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWatermark_ImageURL(t *testing.T) {
	src := samplePNG(t)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(src)
	}))
	defer upstream.Close()

	r := newTestEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, map[string]string{"text": "remote", "image_url": upstream.URL + "/a.png"}, nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestHealthCheck_WithoutCache(t *testing.T) {
	r := newTestEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Contains(t, w.Body.String(), "not configured")
}

func TestGetStats_WithoutCache(t *testing.T) {
	r := newTestEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(watermark.ErrInvalidArgument))
	assert.Equal(t, http.StatusBadRequest, statusFor(watermark.ErrImageDecode))
	assert.Equal(t, http.StatusInternalServerError, statusFor(watermark.ErrFontLoad))
	assert.Equal(t, http.StatusInternalServerError, statusFor(watermark.ErrImageEncode))
}

func TestFormatExt(t *testing.T) {
	assert.Equal(t, "png", formatExt(imaging.PNG))
	assert.Equal(t, "jpg", formatExt(imaging.JPEG))
	assert.Equal(t, "gif", formatExt(imaging.GIF))
	assert.Equal(t, "tiff", formatExt(imaging.TIFF))
}

func TestWatermark_TIFFUpload(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, imaging.Encode(&src, image.NewNRGBA(image.Rect(0, 0, 40, 30)), imaging.TIFF))

	r := newTestEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, map[string]string{"text": "scan"}, src.Bytes()))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out, err := imaging.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), out.Bounds())
}

func TestWatermark_RespectsAllowedTypes(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.AllowedTypes = []string{"image/jpeg"}
	h := NewWatermarkHandler(processor.NewImageProcessor(cfg.Watermark, zap.NewNop()), nil, zap.NewNop(), cfg)
	r := gin.New()
	r.POST("/watermark", h.Watermark)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, map[string]string{"text": "x"}, samplePNG(t)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeResponse(t, w).Error, "image/png")
}
