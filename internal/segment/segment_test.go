package segment

import (
	"math"
	"testing"

	"fire-aimer/internal/thermal"
	"fire-aimer/pkg/geometry"
)

func makeGrid(w, h int, background float64) *thermal.Grid {
	g := thermal.NewGrid(w, h)
	for i := range g.Data {
		g.Data[i] = background
	}
	return g
}

func stampDisk(g *thermal.Grid, cx, cy, r int, temp float64) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r && g.InBounds(cx+dx, cy+dy) {
				g.Set(cx+dx, cy+dy, temp)
			}
		}
	}
}

func TestSegmentAllCold(t *testing.T) {
	g := makeGrid(100, 100, 20)

	res, err := Segment(g, DefaultOptions())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	defer res.Close()

	if len(res.Contours) != 0 {
		t.Errorf("got %d contours on an all-cold grid, want 0", len(res.Contours))
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if res.Mask.GetUCharAt(y, x) != 0 {
				t.Fatalf("mask foreground at (%d,%d) on an all-cold grid", x, y)
			}
		}
	}
}

func TestSegmentHotDisk(t *testing.T) {
	const r = 12
	g := makeGrid(100, 100, 20)
	stampDisk(g, 50, 50, r, 300)

	res, err := Segment(g, DefaultOptions())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	defer res.Close()

	if len(res.Contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(res.Contours))
	}

	area := geometry.PolygonArea(res.Contours[0])
	want := math.Pi * r * r
	if math.Abs(area-want) > 0.12*want {
		t.Errorf("contour area = %.1f, want within 12%% of %.1f", area, want)
	}

	c, ok := geometry.PolygonCentroid(res.Contours[0])
	if !ok {
		t.Fatal("degenerate disk contour")
	}
	if math.Abs(c.X-50) > 1 || math.Abs(c.Y-50) > 1 {
		t.Errorf("centroid = (%.2f, %.2f), want within 1px of (50, 50)", c.X, c.Y)
	}
}

func TestSegmentRemovesSinglePixelNoise(t *testing.T) {
	g := makeGrid(60, 60, 20)
	g.Set(10, 10, 400) // isolated hot pixel, killed by opening

	res, err := Segment(g, DefaultOptions())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	defer res.Close()

	if len(res.Contours) != 0 {
		t.Errorf("got %d contours, want single-pixel noise removed", len(res.Contours))
	}
}

func TestSegmentThresholdInclusive(t *testing.T) {
	opts := DefaultOptions()
	g := makeGrid(60, 60, 20)
	stampDisk(g, 30, 30, 10, opts.ThresholdCelsius) // exactly at threshold

	res, err := Segment(g, opts)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	defer res.Close()

	if len(res.Contours) != 1 {
		t.Errorf("got %d contours, want cells at the threshold to be foreground", len(res.Contours))
	}
}

func TestSegmentInvalidGrid(t *testing.T) {
	tests := []struct {
		name string
		grid *thermal.Grid
	}{
		{"nil", nil},
		{"empty", &thermal.Grid{}},
		{"nan", &thermal.Grid{Width: 1, Height: 1, Data: []float64{math.NaN()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Segment(tt.grid, DefaultOptions()); err == nil {
				t.Error("expected error")
			}
		})
	}
}
