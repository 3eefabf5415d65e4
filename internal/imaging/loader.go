package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io/fs"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Sentinel errors for the two recognized load failures. Callers distinguish
// them with errors.Is; both are wrapped with the offending path.
var (
	// ErrMissingInput indicates the input path does not reference an
	// existing regular file.
	ErrMissingInput = errors.New("input file not found")

	// ErrDecode indicates the input file exists but its bytes could not be
	// decoded as a supported image format.
	ErrDecode = errors.New("image decode failed")
)

// ImageInfo contains metadata about a loaded image file.
//
// This struct provides essential information about an image without requiring
// the caller to analyze the image data directly.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "gif", or "unknown".
	// Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel of the decoded source
	// type: "8-bit" or "16-bit". The working representation is always 8-bit.
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the source image carried an alpha
	// (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Load reads and decodes the image at path, normalizing it to 8-bit NRGBA.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats are
//     PNG, JPEG, and GIF.
//
// Returns:
//   - *image.NRGBA: The decoded image, converted from whatever concrete type
//     the decoder produced (YCbCr, Gray, Paletted, RGBA64, ...) to 8-bit
//     non-premultiplied RGBA with bounds at the origin. Grayscale input is
//     expanded to three equal channels; 16-bit input is truncated to 8-bit;
//     an alpha channel, if present, is preserved.
//   - *ImageInfo: Metadata about the source file and its decoded type.
//   - error: Wraps ErrMissingInput if the path does not reference an existing
//     file, or ErrDecode if the file exists but cannot be decoded. Stat
//     failures other than nonexistence (permissions, I/O) propagate with
//     context but without a sentinel.
//
// The normalization means every downstream stage can assume a dense 8-bit
// RGBA pixel buffer regardless of the source format.
func Load(path string) (*image.NRGBA, *ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		// Other stat failures (permissions, I/O) are not a missing input.
		return nil, nil, fmt.Errorf("failed to stat input: %w", err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	return imaging.Clone(img), describe(img, path, stat.Size()), nil
}

// describe builds the ImageInfo for a decoded image.
//
// # Format Detection
//
// The format is determined by file extension:
//   - ".png" -> "png"
//   - ".jpg", ".jpeg" -> "jpeg"
//   - ".gif" -> "gif"
//   - Other extensions -> "unknown"
//
// # Color Depth Detection
//
// Color depth is determined by the decoded Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func describe(img image.Image, path string, size int64) *ImageInfo {
	bounds := img.Bounds()

	ext := filepath.Ext(path)
	format := "unknown"
	switch ext {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: size,
	}
}
