// Package segment extracts candidate fire regions from a temperature
// grid: per-cell thresholding followed by morphological cleanup and
// external contour extraction.
package segment

import (
	"fmt"
	"image"

	"fire-aimer/internal/thermal"
	"fire-aimer/pkg/geometry"

	"gocv.io/x/gocv"
)

// Options configures fire-region segmentation.
type Options struct {
	ThresholdCelsius float64 // cells at or above this temperature are foreground
	KernelSize       int     // elliptical structuring element side for open/close
}

// DefaultOptions returns the segmentation defaults for the reference
// deployment.
func DefaultOptions() Options {
	return Options{
		ThresholdCelsius: 250,
		KernelSize:       5,
	}
}

// Result holds the cleaned foreground mask and the external boundary of
// each connected region. The caller must Close the result to release
// the mask.
type Result struct {
	Mask     gocv.Mat // single-channel 8U, 255 = foreground
	Contours [][]geometry.PointInt
}

// Close releases the underlying mask.
func (r *Result) Close() {
	if r != nil && !r.Mask.Empty() {
		r.Mask.Close()
	}
}

// Segment thresholds the grid and cleans the mask with one
// morphological opening then one closing using an elliptical kernel.
// Opening removes single-pixel noise, closing fills small interior
// gaps. Deterministic; contours are returned in discovery order.
func Segment(grid *thermal.Grid, opts Options) (*Result, error) {
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	if opts.KernelSize <= 0 {
		return nil, fmt.Errorf("segment: invalid kernel size %d", opts.KernelSize)
	}

	// Threshold is inclusive: cell >= threshold is foreground.
	mask := gocv.NewMatWithSize(grid.Height, grid.Width, gocv.MatTypeCV8U)
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if grid.At(x, y) >= opts.ThresholdCelsius {
				mask.SetUCharAt(y, x, 255)
			}
		}
	}

	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(opts.KernelSize, opts.KernelSize))
	defer kernel.Close()

	gocv.MorphologyEx(mask, &mask, gocv.MorphOpen, kernel)
	gocv.MorphologyEx(mask, &mask, gocv.MorphClose, kernel)

	return &Result{
		Mask:     mask,
		Contours: findExternalContours(mask),
	}, nil
}

// findExternalContours extracts external region boundaries from a
// binary mask as integer pixel polygons.
func findExternalContours(mask gocv.Mat) [][]geometry.PointInt {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	out := make([][]geometry.PointInt, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		pts := make([]geometry.PointInt, contour.Size())
		for j := 0; j < contour.Size(); j++ {
			pt := contour.At(j)
			pts[j] = geometry.PointInt{X: pt.X, Y: pt.Y}
		}
		out = append(out, pts)
	}
	return out
}
