package thermal

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// DefaultSensorWidth and DefaultSensorHeight match the resolution of
// the reference thermal sensor.
const (
	DefaultSensorWidth  = 384
	DefaultSensorHeight = 288
)

// LoadOptions configures grayscale-image to temperature-grid conversion.
type LoadOptions struct {
	MinTemp float64 // temperature mapped to gray value 0
	MaxTemp float64 // temperature mapped to gray value 255
	Width   int     // target grid width
	Height  int     // target grid height
}

// DefaultLoadOptions returns load options for the reference sensor.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		MinTemp: 20,
		MaxTemp: 500,
		Width:   DefaultSensorWidth,
		Height:  DefaultSensorHeight,
	}
}

// LoadImage reads a grayscale thermal snapshot (PNG, JPEG, TIFF, or
// BMP) and converts it to a temperature grid by linearly mapping gray
// levels onto [MinTemp, MaxTemp], resampling to the target resolution.
func LoadImage(path string, opts LoadOptions) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open thermal image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode thermal image %s: %w", path, err)
	}

	return GridFromImage(img, opts)
}

// GridFromImage converts a decoded image to a temperature grid.
func GridFromImage(img image.Image, opts LoadOptions) (*Grid, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid target resolution %dx%d", opts.Width, opts.Height)
	}
	if opts.MaxTemp <= opts.MinTemp {
		return nil, fmt.Errorf("invalid temperature range [%g, %g]", opts.MinTemp, opts.MaxTemp)
	}

	// Resample to sensor resolution, then collapse to gray.
	scaled := image.NewGray(image.Rect(0, 0, opts.Width, opts.Height))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	scale := (opts.MaxTemp - opts.MinTemp) / 255.0
	g := NewGrid(opts.Width, opts.Height)
	for y := 0; y < opts.Height; y++ {
		for x := 0; x < opts.Width; x++ {
			g.Set(x, y, opts.MinTemp+float64(scaled.GrayAt(x, y).Y)*scale)
		}
	}
	return g, nil
}
