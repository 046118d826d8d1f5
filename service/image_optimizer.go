package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp" // Register the webp decoder

	"tribe-africa-store/utils"
)

// ErrNotAnImage is returned when the uploaded bytes are not an image
var ErrNotAnImage = errors.New("file must be an image")

const (
	minQuality         = 40
	qualityStep        = 10
	maxQualityAttempts = 3
)

// ImagePreset names a compression preset
type ImagePreset string

const (
	PresetProduct   ImagePreset = "PRODUCT"
	PresetGallery   ImagePreset = "GALLERY"
	PresetThumbnail ImagePreset = "THUMBNAIL"
	PresetHero      ImagePreset = "HERO"
	PresetLogo      ImagePreset = "LOGO"
)

// CompressionOptions controls resizing and encoding. Format is one of jpeg,
// png or webp.
type CompressionOptions struct {
	MaxWidth  int    `json:"maxWidth"`
	MaxHeight int    `json:"maxHeight"`
	Quality   int    `json:"quality"` // 1-100
	Format    string `json:"format"`
	MaxSizeKB int    `json:"maxSizeKB"`
}

// CompressionPresets holds the presets for the storefront image slots
var CompressionPresets = map[ImagePreset]CompressionOptions{
	// Detailed fabric textures
	PresetProduct:   {MaxWidth: 1200, MaxHeight: 1200, Quality: 85, Format: "webp", MaxSizeKB: 400},
	PresetGallery:   {MaxWidth: 800, MaxHeight: 600, Quality: 80, Format: "webp", MaxSizeKB: 250},
	PresetThumbnail: {MaxWidth: 300, MaxHeight: 300, Quality: 75, Format: "webp", MaxSizeKB: 80},
	PresetHero:      {MaxWidth: 1920, MaxHeight: 1080, Quality: 80, Format: "webp", MaxSizeKB: 600},
	// Keeps transparency
	PresetLogo: {MaxWidth: 400, MaxHeight: 400, Quality: 90, Format: "png", MaxSizeKB: 150},
}

// PresetOptions returns the options of a named preset, case-insensitive
func PresetOptions(name string) (CompressionOptions, error) {
	opts, ok := CompressionPresets[ImagePreset(strings.ToUpper(strings.TrimSpace(name)))]
	if !ok {
		return CompressionOptions{}, fmt.Errorf("unknown preset %q", name)
	}
	return opts, nil
}

// CompressionResult describes one compressed image
type CompressionResult struct {
	Name             string  `json:"name,omitempty"`
	Data             []byte  `json:"-"`
	MimeType         string  `json:"mimeType"`
	Format           string  `json:"format"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	Quality          int     `json:"quality"`
	OriginalSize     int     `json:"originalSize"`
	CompressedSize   int     `json:"compressedSize"`
	CompressionRatio float64 `json:"compressionRatio"`
}

// Stats renders the saving for display, e.g. "Saved 1.5 KB (42%)"
func (r CompressionResult) Stats() string {
	saved := int64(r.OriginalSize - r.CompressedSize)
	return fmt.Sprintf("Saved %s (%d%%)", utils.FormatFileSize(saved), int(math.Round(r.CompressionRatio*100)))
}

// ImageOptimizer compresses images with imaging
type ImageOptimizer struct {
	logger *zap.Logger
}

// NewImageOptimizer creates a new ImageOptimizer
func NewImageOptimizer(logger *zap.Logger) *ImageOptimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageOptimizer{logger: logger}
}

// CompressImage downsizes an image to fit the bounds, keeping its aspect
// ratio, and encodes it. While the output exceeds MaxSizeKB the quality is
// lowered by 10, never below 40, for at most three extra attempts.
// webp has no pure Go encoder, so webp output is written as jpeg.
func (o *ImageOptimizer) CompressImage(data []byte, opts CompressionOptions) (*CompressionResult, error) {
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotAnImage, mime.String())
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	opts = withDefaults(opts, mime.String())

	bounds := img.Bounds()
	var resized image.Image = img
	if bounds.Dx() > opts.MaxWidth || bounds.Dy() > opts.MaxHeight {
		resized = imaging.Fit(img, opts.MaxWidth, opts.MaxHeight, imaging.Lanczos)
		o.logger.Debug("resized image",
			zap.Int("from_width", bounds.Dx()), zap.Int("from_height", bounds.Dy()),
			zap.Int("to_width", resized.Bounds().Dx()), zap.Int("to_height", resized.Bounds().Dy()))
	}

	format := imaging.JPEG
	formatName := "jpeg"
	if opts.Format == "png" {
		format = imaging.PNG
		formatName = "png"
	}

	quality := opts.Quality
	out, err := encode(resized, format, quality)
	if err != nil {
		return nil, err
	}

	// Quality has no effect on png output
	target := opts.MaxSizeKB * 1024
	for attempts := 0; format == imaging.JPEG && target > 0 && len(out) > target && quality > minQuality && attempts < maxQualityAttempts; attempts++ {
		quality -= qualityStep
		if quality < minQuality {
			quality = minQuality
		}
		if out, err = encode(resized, format, quality); err != nil {
			return nil, err
		}
	}

	result := &CompressionResult{
		Data:           out,
		MimeType:       "image/" + formatName,
		Format:         formatName,
		Width:          resized.Bounds().Dx(),
		Height:         resized.Bounds().Dy(),
		Quality:        quality,
		OriginalSize:   len(data),
		CompressedSize: len(out),
	}
	if len(data) > 0 {
		result.CompressionRatio = float64(len(data)-len(out)) / float64(len(data))
	}

	o.logger.Info("image compressed",
		zap.String("format", formatName),
		zap.Int("quality", quality),
		zap.Int("original_size", result.OriginalSize),
		zap.Int("compressed_size", result.CompressedSize))
	return result, nil
}

// NamedImage is an input of CompressImages
type NamedImage struct {
	Name string
	Data []byte
}

// CompressImages compresses every image in order. An image that fails to
// compress is returned unchanged with a compression ratio of 0.
func (o *ImageOptimizer) CompressImages(images []NamedImage, opts CompressionOptions) []CompressionResult {
	results := make([]CompressionResult, 0, len(images))
	for _, in := range images {
		res, err := o.CompressImage(in.Data, opts)
		if err != nil {
			o.logger.Warn("failed to compress image, keeping original", zap.String("name", in.Name), zap.Error(err))
			mime := mimetype.Detect(in.Data)
			format := "unknown"
			if parts := strings.SplitN(mime.String(), "/", 2); len(parts) == 2 && parts[0] == "image" {
				format = parts[1]
			}
			results = append(results, CompressionResult{
				Name:           in.Name,
				Data:           in.Data,
				MimeType:       mime.String(),
				Format:         format,
				OriginalSize:   len(in.Data),
				CompressedSize: len(in.Data),
			})
			continue
		}
		res.Name = in.Name
		results = append(results, *res)
	}
	return results
}

// withDefaults fills unset options. Without a format, png input stays png
// to keep transparency and everything else becomes jpeg.
func withDefaults(opts CompressionOptions, mime string) CompressionOptions {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = 1200
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = 1200
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = 80
	}
	opts.Format = strings.ToLower(opts.Format)
	if opts.Format == "" {
		if mime == "image/png" || mime == "image/gif" {
			opts.Format = "png"
		} else {
			opts.Format = "jpeg"
		}
	}
	return opts
}

func encode(img image.Image, format imaging.Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if format == imaging.PNG {
		err = imaging.Encode(&buf, img, format, imaging.PNGCompressionLevel(png.BestCompression))
	} else {
		err = imaging.Encode(&buf, img, format, imaging.JPEGQuality(quality))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
