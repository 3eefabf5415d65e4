package pipeline

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/photo-restore/internal/imaging"
)

// Default filter parameters. Chosen for mild, photorealistic cleanup: the
// bilateral pass removes sensor noise without flattening edges, and the
// unsharp pass restores the slight softness the denoise introduces.
const (
	// DenoiseDiameter is the bilateral filter neighborhood diameter in pixels.
	DenoiseDiameter = 9

	// DenoiseSigmaColor is the bilateral color-similarity tolerance.
	DenoiseSigmaColor = 75

	// DenoiseSigmaSpace is the bilateral spatial-distance tolerance.
	DenoiseSigmaSpace = 75

	// SharpenAmount is the unsharp mask residual gain.
	SharpenAmount = 1.0

	// SharpenRadius is the unsharp mask Gaussian standard deviation.
	SharpenRadius = 3
)

// Result describes a completed pipeline run.
type Result struct {
	// Width and Height of the processed image in pixels. Identical to the
	// input dimensions; the pipeline never resizes.
	Width  int `json:"width"`
	Height int `json:"height"`

	// OutputPath is the full path of the written result file.
	OutputPath string `json:"output_path"`
}

// Pipeline runs the fixed denoise-then-sharpen sequence over one image.
//
// A Pipeline is stateless between runs; the fields are operating parameters
// set once at construction. It is not safe to change fields while Process is
// executing, but distinct Pipeline values may run concurrently.
type Pipeline struct {
	// Bilateral filter parameters.
	Diameter   int
	SigmaColor float64
	SigmaSpace float64

	// Unsharp mask parameters.
	Amount float64
	Radius float64

	// Out receives the informational console lines. Defaults to os.Stdout
	// in New.
	Out io.Writer

	// Debug enables a quality-report log line comparing input and output.
	Debug bool
}

// New returns a Pipeline with the default operating parameters, writing
// informational lines to stdout.
func New() *Pipeline {
	return &Pipeline{
		Diameter:   DenoiseDiameter,
		SigmaColor: DenoiseSigmaColor,
		SigmaSpace: DenoiseSigmaSpace,
		Amount:     SharpenAmount,
		Radius:     SharpenRadius,
		Out:        os.Stdout,
	}
}

// Process runs the full pipeline over the image at inputPath and writes the
// result into outputDir as "result_<base>.png".
//
// The stages run strictly in sequence, each consuming the previous stage's
// output: load, bilateral denoise, unsharp sharpen, encode. Two informational
// lines are written to p.Out: one after the load reporting resolution and
// storage type, one after the write reporting the final path.
//
// Returns the run's Result, or an error from the failing stage. Load failures
// match imaging.ErrMissingInput or imaging.ErrDecode via errors.Is; no output
// file is produced on any error.
func (p *Pipeline) Process(inputPath, outputDir string) (*Result, error) {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}

	img, info, err := imaging.Load(inputPath)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Loaded %q: resolution %dx%d, storage %s\n",
		inputPath, info.Width, info.Height, info.ColorDepth)

	denoised := imaging.Bilateral(img, p.Diameter, p.SigmaColor, p.SigmaSpace)
	sharpened := imaging.Unsharp(denoised, p.Amount, p.Radius)

	if p.Debug {
		if report, err := imaging.Compare(img, sharpened); err == nil {
			log.Printf("quality: mean dLab=%.2f, changed=%d/%d, contrast %.3f -> %.3f",
				report.MeanDeltaLab, report.PixelsChanged, report.TotalPixels,
				report.ContrastBefore, report.ContrastAfter)
		}
	}

	outPath, err := imaging.WriteResult(sharpened, inputPath, outputDir)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Done. Result saved to: %s\n", outPath)

	return &Result{
		Width:      info.Width,
		Height:     info.Height,
		OutputPath: outPath,
	}, nil
}
