package controller

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"tribe-africa-store/service"
)

const maxUploadBytes = 32 << 20

// ImageCompressor compresses uploaded images
type ImageCompressor interface {
	CompressImages(images []service.NamedImage, opts service.CompressionOptions) []service.CompressionResult
}

// CompressedImage is one entry of the compression response
type CompressedImage struct {
	service.CompressionResult
	Stats string `json:"stats"`
	Data  []byte `json:"data"` // base64 in JSON
}

// ImageController handles image uploads for the admin
type ImageController struct {
	optimizer ImageCompressor
	logger    *zap.Logger
}

// NewImageController creates a new ImageController
func NewImageController(optimizer ImageCompressor, logger *zap.Logger) *ImageController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageController{optimizer: optimizer, logger: logger}
}

// Compress handles POST /admin/images/compress?preset=PRODUCT
// Expects a multipart form with one or more "images" files
func (c *ImageController) Compress(w http.ResponseWriter, r *http.Request) {
	preset := r.URL.Query().Get("preset")
	if preset == "" {
		preset = string(service.PresetProduct)
	}
	opts, err := service.PresetOptions(preset)
	if err != nil {
		writeError(w, c.logger, invalidf("%v", err))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, c.logger, invalidf("failed to parse upload: %v", err))
		return
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		writeError(w, c.logger, invalidf("at least one file is required in the \"images\" field"))
		return
	}

	images := make([]service.NamedImage, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			writeError(w, c.logger, invalidf("failed to open %s: %v", h.Filename, err))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, c.logger, invalidf("failed to read %s: %v", h.Filename, err))
			return
		}
		images = append(images, service.NamedImage{Name: h.Filename, Data: data})
	}

	results := c.optimizer.CompressImages(images, opts)
	out := make([]CompressedImage, 0, len(results))
	for _, res := range results {
		out = append(out, CompressedImage{CompressionResult: res, Stats: res.Stats(), Data: res.Data})
	}

	c.logger.Info("images compressed", zap.String("preset", preset), zap.Int("count", len(out)))
	writeJSON(w, c.logger, http.StatusOK, out)
}
