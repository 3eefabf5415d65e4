package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// WriteResult encodes an image as PNG into outputDir, deriving the filename
// from the input path.
//
// The output name is "result_<base>.png" where <base> is the input filename
// without its extension, so "images/img-3.jpg" becomes
// "<outputDir>/result_img-3.png". PNG keeps the write lossless regardless of
// the input format. The output directory is created if it does not exist.
//
// Returns the full path of the written file.
func WriteResult(img image.Image, inputPath, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	outPath := filepath.Join(outputDir, "result_"+base+".png")

	if err := imaging.Save(img, outPath); err != nil {
		return "", fmt.Errorf("failed to encode result image: %w", err)
	}

	return outPath, nil
}
