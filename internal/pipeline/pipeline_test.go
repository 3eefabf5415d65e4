package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/photo-restore/internal/imaging"
)

// writeSceneJPEG writes a small synthetic photograph: a bright sky over a
// dark ground with a vertical pole, so both filters have edges and flat
// regions to work on. Returns the file path.
func writeSceneJPEG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{180, 200, 230, 255} // sky
			if y > height/2 {
				c = color.RGBA{70, 90, 50, 255} // ground
			}
			if x == width/2 {
				c = color.RGBA{40, 35, 30, 255} // pole
			}
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return path
}

func TestProcess_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	imagesDir := filepath.Join(dir, "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	inputPath := writeSceneJPEG(t, imagesDir, "img-3.jpg", 64, 32)
	outputDir := filepath.Join(dir, "output")

	var out bytes.Buffer
	p := New()
	p.Out = &out

	result, err := p.Process(inputPath, outputDir)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	wantPath := filepath.Join(outputDir, "result_img-3.png")
	if result.OutputPath != wantPath {
		t.Errorf("OutputPath: got %s, want %s", result.OutputPath, wantPath)
	}
	if result.Width != 64 || result.Height != 32 {
		t.Errorf("result dimensions: got %dx%d, want 64x32", result.Width, result.Height)
	}

	written, info, err := imaging.Load(wantPath)
	if err != nil {
		t.Fatalf("output file does not load: %v", err)
	}
	if written.Bounds().Dx() != 64 || written.Bounds().Dy() != 32 {
		t.Errorf("output dimensions: got %dx%d, want 64x32",
			written.Bounds().Dx(), written.Bounds().Dy())
	}
	if info.Format != "png" {
		t.Errorf("output format: got %s, want png", info.Format)
	}

	console := out.String()
	if !strings.Contains(console, "64x32") {
		t.Errorf("console output should contain resolution, got: %q", console)
	}
	if !strings.Contains(console, wantPath) {
		t.Errorf("console output should contain the output path, got: %q", console)
	}
}

func TestProcess_MissingInput(t *testing.T) {
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "output")

	p := New()
	p.Out = &bytes.Buffer{}

	_, err := p.Process(filepath.Join(dir, "images", "img-3.jpg"), outputDir)
	if !errors.Is(err, imaging.ErrMissingInput) {
		t.Fatalf("error should match ErrMissingInput, got: %v", err)
	}

	if _, statErr := os.Stat(outputDir); !os.IsNotExist(statErr) {
		t.Error("no output should be produced for a missing input")
	}
}

func TestProcess_DecodeFailure(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "img-3.jpg")
	if err := os.WriteFile(inputPath, nil, 0o644); err != nil {
		t.Fatalf("failed to write zero-byte file: %v", err)
	}
	outputDir := filepath.Join(dir, "output")

	p := New()
	p.Out = &bytes.Buffer{}

	_, err := p.Process(inputPath, outputDir)
	if !errors.Is(err, imaging.ErrDecode) {
		t.Fatalf("error should match ErrDecode, got: %v", err)
	}

	if _, statErr := os.Stat(outputDir); !os.IsNotExist(statErr) {
		t.Error("no output should be produced for an undecodable input")
	}
}

func TestProcess_Deterministic(t *testing.T) {
	dir := t.TempDir()
	inputPath := writeSceneJPEG(t, dir, "scene.jpg", 48, 24)

	p := New()
	p.Out = &bytes.Buffer{}

	r1, err := p.Process(inputPath, filepath.Join(dir, "out1"))
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	r2, err := p.Process(inputPath, filepath.Join(dir, "out2"))
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	b1, err := os.ReadFile(r1.OutputPath)
	if err != nil {
		t.Fatalf("read first output: %v", err)
	}
	b2, err := os.ReadFile(r2.OutputPath)
	if err != nil {
		t.Fatalf("read second output: %v", err)
	}
	if diff := cmp.Diff(b1, b2); diff != "" {
		t.Errorf("repeated runs differ (-first +second):\n%s", diff)
	}
}

func TestProcess_ShapePreservedThroughStages(t *testing.T) {
	// Exercise the stages directly to pin the shape invariant at each hop,
	// not only end to end.
	dir := t.TempDir()
	inputPath := writeSceneJPEG(t, dir, "scene.jpg", 37, 19)

	img, _, err := imaging.Load(inputPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	p := New()
	denoised := imaging.Bilateral(img, p.Diameter, p.SigmaColor, p.SigmaSpace)
	sharpened := imaging.Unsharp(denoised, p.Amount, p.Radius)

	for _, stage := range []struct {
		name string
		img  *image.NRGBA
	}{
		{"loaded", img},
		{"denoised", denoised},
		{"sharpened", sharpened},
	} {
		if stage.img.Bounds().Dx() != 37 || stage.img.Bounds().Dy() != 19 {
			t.Errorf("%s: dimensions %dx%d, want 37x19",
				stage.name, stage.img.Bounds().Dx(), stage.img.Bounds().Dy())
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	p := New()
	if p.Diameter != 9 || p.SigmaColor != 75 || p.SigmaSpace != 75 {
		t.Errorf("unexpected denoise defaults: d=%d sc=%v ss=%v",
			p.Diameter, p.SigmaColor, p.SigmaSpace)
	}
	if p.Amount != 1.0 || p.Radius != 3 {
		t.Errorf("unexpected sharpen defaults: amount=%v radius=%v", p.Amount, p.Radius)
	}
	if p.Out == nil {
		t.Error("Out should default to a writer")
	}
}
