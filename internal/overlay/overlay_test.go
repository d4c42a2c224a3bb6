package overlay

import (
	"testing"

	"fire-aimer/internal/cluster"
	"fire-aimer/internal/hotspot"
	"fire-aimer/internal/thermal"
	"fire-aimer/pkg/geometry"
)

func TestColorizeDimensions(t *testing.T) {
	g := thermal.NewGrid(64, 48)
	for i := range g.Data {
		g.Data[i] = 20 + float64(i%100)
	}

	display := Colorize(g)
	defer display.Close()

	if display.Cols() != 64 || display.Rows() != 48 {
		t.Errorf("display is %dx%d, want 64x48", display.Cols(), display.Rows())
	}
	if display.Channels() != 3 {
		t.Errorf("display has %d channels, want BGR", display.Channels())
	}
}

func TestDrawDoesNotDisturbDimensions(t *testing.T) {
	g := thermal.NewGrid(64, 48)
	display := Colorize(g)
	defer display.Close()

	spots := []hotspot.HotSpot{
		{
			ID:            0,
			PixelCentroid: geometry.Point2D{X: 30, Y: 20},
			Contour: []geometry.PointInt{
				{X: 25, Y: 15}, {X: 35, Y: 15}, {X: 35, Y: 25}, {X: 25, Y: 25},
			},
		},
	}
	targets := []cluster.SprayTarget{
		{
			ID:               0,
			PixelAimPoint:    geometry.Point2D{X: 30, Y: 20},
			SourceHotspotIDs: []int{0, 7}, // 7 has no hotspot; must be skipped
			Severity:         1000,
		},
	}

	Draw(&display, spots, targets)

	if display.Cols() != 64 || display.Rows() != 48 {
		t.Errorf("display resized to %dx%d", display.Cols(), display.Rows())
	}
}
