package thermal

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestGridValidate(t *testing.T) {
	tests := []struct {
		name    string
		grid    *Grid
		wantErr bool
	}{
		{"valid", NewGrid(4, 3), false},
		{"nil", nil, true},
		{"zero width", &Grid{Width: 0, Height: 3}, true},
		{"length mismatch", &Grid{Width: 4, Height: 3, Data: make([]float64, 5)}, true},
		{"nan cell", &Grid{Width: 1, Height: 1, Data: []float64{math.NaN()}}, true},
		{"inf cell", &Grid{Width: 1, Height: 1, Data: []float64{math.Inf(1)}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grid.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGridMinMax(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(0, 0, 20)
	g.Set(1, 0, 300)
	g.Set(0, 1, -5)
	g.Set(1, 1, 150)

	lo, hi := g.MinMax()
	if lo != -5 || hi != 300 {
		t.Errorf("MinMax = (%v, %v), want (-5, 300)", lo, hi)
	}
}

func TestGridMatRoundtrip(t *testing.T) {
	g := NewGrid(3, 2)
	for i := range g.Data {
		g.Data[i] = 20.5 + float64(i)
	}

	mat := g.ToMat()
	defer mat.Close()

	back, err := GridFromMat(mat)
	if err != nil {
		t.Fatalf("GridFromMat: %v", err)
	}
	if back.Width != g.Width || back.Height != g.Height {
		t.Fatalf("dimensions %dx%d, want %dx%d", back.Width, back.Height, g.Width, g.Height)
	}
	for i := range g.Data {
		if math.Abs(back.Data[i]-g.Data[i]) > 1e-3 {
			t.Errorf("cell %d = %v, want %v", i, back.Data[i], g.Data[i])
		}
	}
}

func TestGridFromImageMapping(t *testing.T) {
	// Left half black, right half white, no resampling.
	img := image.NewGray(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 20; x < 40; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	opts := LoadOptions{MinTemp: 20, MaxTemp: 500, Width: 40, Height: 20}
	g, err := GridFromImage(img, opts)
	if err != nil {
		t.Fatalf("GridFromImage: %v", err)
	}

	if got := g.At(5, 10); math.Abs(got-20) > 0.01 {
		t.Errorf("black pixel = %v C, want 20", got)
	}
	if got := g.At(35, 10); math.Abs(got-500) > 0.01 {
		t.Errorf("white pixel = %v C, want 500", got)
	}
}

func TestGridFromImageInvalidOptions(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))

	if _, err := GridFromImage(img, LoadOptions{MinTemp: 20, MaxTemp: 500, Width: 0, Height: 4}); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := GridFromImage(img, LoadOptions{MinTemp: 500, MaxTemp: 20, Width: 4, Height: 4}); err == nil {
		t.Error("expected error for inverted temperature range")
	}
}
