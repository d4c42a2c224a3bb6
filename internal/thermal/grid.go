// Package thermal provides the per-pixel temperature grid produced by a
// thermal sensor and conversions between grids, images, and OpenCV mats.
package thermal

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/floats"
)

// Grid is a rectangular single-channel grid of temperature samples in
// degrees Celsius, stored row-major. A valid grid has positive
// dimensions and only finite cells.
type Grid struct {
	Width  int
	Height int
	Data   []float64
}

// NewGrid allocates a zeroed grid of the given dimensions.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Data:   make([]float64, width*height),
	}
}

// At returns the temperature at pixel (x, y). No bounds checking.
func (g *Grid) At(x, y int) float64 {
	return g.Data[y*g.Width+x]
}

// Set writes the temperature at pixel (x, y). No bounds checking.
func (g *Grid) Set(x, y int, celsius float64) {
	g.Data[y*g.Width+x] = celsius
}

// InBounds reports whether pixel (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Validate checks the grid invariants: positive dimensions, data length
// matching width*height, and all cells finite.
func (g *Grid) Validate() error {
	if g == nil {
		return fmt.Errorf("nil grid")
	}
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("invalid grid dimensions %dx%d", g.Width, g.Height)
	}
	if len(g.Data) != g.Width*g.Height {
		return fmt.Errorf("grid data length %d does not match %dx%d", len(g.Data), g.Width, g.Height)
	}
	for i, v := range g.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite temperature at cell %d", i)
		}
	}
	return nil
}

// MinMax returns the minimum and maximum temperature in the grid.
// Returns zeros for an empty grid.
func (g *Grid) MinMax() (float64, float64) {
	if g == nil || len(g.Data) == 0 {
		return 0, 0
	}
	return floats.Min(g.Data), floats.Max(g.Data)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Width, g.Height)
	copy(out.Data, g.Data)
	return out
}

// ToMat converts the grid to a single-channel CV_32F mat. The caller
// owns the returned mat and must Close it.
func (g *Grid) ToMat() gocv.Mat {
	mat := gocv.NewMatWithSize(g.Height, g.Width, gocv.MatTypeCV32F)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			mat.SetFloatAt(y, x, float32(g.At(x, y)))
		}
	}
	return mat
}

// GridFromMat converts a single-channel CV_32F mat to a grid.
func GridFromMat(mat gocv.Mat) (*Grid, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("empty mat")
	}
	if mat.Type() != gocv.MatTypeCV32F {
		return nil, fmt.Errorf("mat type %v is not CV_32F", mat.Type())
	}

	g := NewGrid(mat.Cols(), mat.Rows())
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.Set(x, y, float64(mat.GetFloatAt(y, x)))
		}
	}
	return g, nil
}
