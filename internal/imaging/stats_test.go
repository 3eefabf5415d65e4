package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestCompare_IdenticalImages(t *testing.T) {
	a := newGradientNRGBA(20, 10)
	b := newGradientNRGBA(20, 10)

	report, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if report.MeanDeltaLab != 0 {
		t.Errorf("identical images should report zero delta, got %v", report.MeanDeltaLab)
	}
	if report.PixelsChanged != 0 {
		t.Errorf("identical images should report no changed pixels, got %d", report.PixelsChanged)
	}
	if report.TotalPixels != 200 {
		t.Errorf("TotalPixels: got %d, want 200", report.TotalPixels)
	}
	if report.ContrastBefore != report.ContrastAfter {
		t.Errorf("identical images should report equal contrast: %v vs %v",
			report.ContrastBefore, report.ContrastAfter)
	}
}

func TestCompare_SizeMismatch(t *testing.T) {
	a := newUniformNRGBA(10, 10, color.NRGBA{0, 0, 0, 255})
	b := newUniformNRGBA(10, 11, color.NRGBA{0, 0, 0, 255})

	if _, err := Compare(a, b); err == nil {
		t.Error("Compare should fail on differently sized images")
	}
}

func TestCompare_CountsVisibleChanges(t *testing.T) {
	a := newUniformNRGBA(10, 10, color.NRGBA{100, 100, 100, 255})
	b := newUniformNRGBA(10, 10, color.NRGBA{100, 100, 100, 255})
	// One pixel pushed far past the just-noticeable threshold.
	b.SetNRGBA(5, 5, color.NRGBA{255, 0, 0, 255})

	report, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if report.PixelsChanged != 1 {
		t.Errorf("PixelsChanged: got %d, want 1", report.PixelsChanged)
	}
	if report.MeanDeltaLab <= 0 {
		t.Errorf("MeanDeltaLab should be positive, got %v", report.MeanDeltaLab)
	}
}

func TestCompare_EmptyImages(t *testing.T) {
	a := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	b := image.NewNRGBA(image.Rect(0, 0, 0, 0))

	report, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if report.TotalPixels != 0 {
		t.Errorf("TotalPixels: got %d, want 0", report.TotalPixels)
	}
}

func TestRMSContrast(t *testing.T) {
	flat := newUniformNRGBA(8, 8, color.NRGBA{128, 128, 128, 255})
	if got := rmsContrast(flat); got != 0 {
		t.Errorf("flat field contrast: got %v, want 0", got)
	}

	// Half black, half white has the maximum possible RMS contrast of 0.5.
	step := newStepEdgeNRGBA(8, 8)
	if got := rmsContrast(step); got < 0.4 {
		t.Errorf("step image contrast too low: %v", got)
	}
}
