package imaging

import (
	"image"
	"math"
)

// Bilateral applies an edge-preserving smoothing filter to an image.
//
// Each output pixel is a weighted average of the pixels within a square
// neighborhood, where the weight of a neighbor is the product of a spatial
// term (Gaussian falloff with distance from the center) and a range term
// (Gaussian falloff with color difference from the center). Neighbors on the
// far side of a strong edge differ sharply in color, receive near-zero range
// weight, and so contribute almost nothing: smooth regions are averaged,
// edges survive.
//
// Parameters:
//   - src: Source image. Not modified.
//   - diameter: Neighborhood diameter in pixels. The filter uses a radius of
//     diameter/2 on each side, so 9 covers a 9x9 window.
//   - sigmaColor: Range tolerance. Larger values let bigger color differences
//     be averaged together.
//   - sigmaSpace: Spatial tolerance. Larger values let farther pixels
//     influence the result.
//
// Returns a newly allocated image with the same bounds as src. Alpha is
// copied through unchanged; only the color channels are filtered.
//
// Degenerate parameters (diameter < 3 or a non-positive sigma) make the
// filter a no-op and return a plain copy.
//
// # Weighting
//
// For a neighbor at offset (dx, dy) with L1 color difference
// d = |dR| + |dG| + |dB| from the center pixel:
//
//	w = exp(-(dx²+dy²) / (2·sigmaSpace²)) · exp(-d² / (2·sigmaColor²))
//
// All three color channels of a neighbor share one weight, so the filter
// cannot introduce colors that were not present in the neighborhood. Borders
// are handled by clamping sample coordinates to the image, replicating edge
// pixels.
func Bilateral(src *image.NRGBA, diameter int, sigmaColor, sigmaSpace float64) *image.NRGBA {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if diameter < 3 || sigmaColor <= 0 || sigmaSpace <= 0 {
		copy(dst.Pix, src.Pix)
		return dst
	}

	radius := diameter / 2

	// Precompute the spatial weights for every offset in the window.
	size := 2*radius + 1
	spaceWeight := make([]float64, size*size)
	spaceCoeff := -0.5 / (sigmaSpace * sigmaSpace)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spaceWeight[(dy+radius)*size+(dx+radius)] = math.Exp(d2 * spaceCoeff)
		}
	}

	// Precompute the range weights. The L1 difference over three 8-bit
	// channels is at most 3*255.
	colorWeight := make([]float64, 3*255+1)
	colorCoeff := -0.5 / (sigmaColor * sigmaColor)
	for d := range colorWeight {
		colorWeight[d] = math.Exp(float64(d*d) * colorCoeff)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			cr := src.Pix[off+0]
			cg := src.Pix[off+1]
			cb := src.Pix[off+2]

			var sumR, sumG, sumB, sumW float64
			for dy := -radius; dy <= radius; dy++ {
				ny := clamp(y+dy, 0, height-1)
				for dx := -radius; dx <= radius; dx++ {
					nx := clamp(x+dx, 0, width-1)
					noff := src.PixOffset(bounds.Min.X+nx, bounds.Min.Y+ny)
					nr := src.Pix[noff+0]
					ng := src.Pix[noff+1]
					nb := src.Pix[noff+2]

					diff := absDiff(nr, cr) + absDiff(ng, cg) + absDiff(nb, cb)
					w := spaceWeight[(dy+radius)*size+(dx+radius)] * colorWeight[diff]

					sumR += w * float64(nr)
					sumG += w * float64(ng)
					sumB += w * float64(nb)
					sumW += w
				}
			}

			// sumW >= weight of the center pixel, which is 1.
			doff := y*dst.Stride + x*4
			dst.Pix[doff+0] = clampByte(sumR / sumW)
			dst.Pix[doff+1] = clampByte(sumG / sumW)
			dst.Pix[doff+2] = clampByte(sumB / sumW)
			dst.Pix[doff+3] = src.Pix[off+3]
		}
	}

	return dst
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in the filter windows.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// clampByte converts a float value to uint8, clipping to [0, 255] and
// rounding to nearest.
func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
