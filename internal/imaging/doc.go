// Package imaging implements the image operations behind the photo-restore
// pipeline.
//
// The package covers four concerns: loading (decode plus normalization to
// 8-bit NRGBA), edge-preserving denoising (bilateral filter), sharpening
// (unsharp mask), and writing (lossless PNG output with derived naming). A
// small quality-report helper measures the perceptual drift a run introduced;
// it informs logging only and never feeds back into processing.
//
// # Image Representation
//
// All filters operate on *image.NRGBA as produced by Load: dense 8-bit
// non-premultiplied RGBA with bounds anchored at the origin. Load performs
// the normalization, so grayscale, paletted, and 16-bit sources all arrive at
// the filters in the same shape. The alpha channel passes through every
// filter untouched.
//
// # Value Semantics
//
// Each filter takes its input image read-only and returns a freshly allocated
// result of identical dimensions. Nothing in this package mutates a caller's
// image, which makes the load -> denoise -> sharpen -> write sequence safe to
// compose without copies or synchronization.
//
// # Error Handling
//
// Loading distinguishes the two failures a caller can act on: ErrMissingInput
// (the path names no file) and ErrDecode (the bytes are not a supported
// image). Both are wrapped with the offending path and match via errors.Is.
// The filters themselves are total over valid images and return no errors;
// write-side failures are wrapped with context but carry no sentinel.
package imaging
