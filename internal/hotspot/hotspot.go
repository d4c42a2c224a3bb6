package hotspot

import (
	"fire-aimer/internal/thermal"
	"fire-aimer/pkg/geometry"
)

// HotSpot describes one detected above-threshold region in a single
// frame. Instances are value types created once per frame and
// discarded at end of frame.
type HotSpot struct {
	ID             int                 `json:"id"`
	PixelCentroid  geometry.Point2D    `json:"pixel_centroid"`
	WorldApprox    geometry.Point3D    `json:"world_position_approx"`
	AreaPixels     float64             `json:"area_pixels"`
	MaxTemperature float64             `json:"max_temperature"`
	Contour        []geometry.PointInt `json:"contour,omitempty"`
}

// Bounds returns the bounding rectangle of the hotspot contour.
func (h HotSpot) Bounds() geometry.RectInt {
	return geometry.BoundingBox(h.Contour)
}

// Options configures hotspot extraction.
type Options struct {
	MinAreaPixels float64 // regions smaller than this are noise
	PlaneDistance float64 // assumed distance to the fire plane, meters
}

// DefaultOptions returns extraction defaults for the reference
// deployment.
func DefaultOptions() Options {
	return Options{
		MinAreaPixels: 30,
		PlaneDistance: 8.0,
	}
}

// Extract turns each external region boundary into a HotSpot. Regions
// below the minimum area and degenerate (zero-area) regions are
// discarded. IDs are assigned sequentially from 0 in discovery order.
// Pure function of its inputs; no side effects.
func Extract(grid *thermal.Grid, contours [][]geometry.PointInt, in Intrinsics, opts Options) []HotSpot {
	if grid == nil || len(contours) == 0 {
		return nil
	}

	var spots []HotSpot
	id := 0
	for _, contour := range contours {
		m := geometry.PolygonMoments(contour)
		if m.M00 == 0 {
			continue
		}
		area := geometry.PolygonArea(contour)
		if area < opts.MinAreaPixels {
			continue
		}
		centroid := geometry.Point2D{X: m.M10 / m.M00, Y: m.M01 / m.M00}

		spots = append(spots, HotSpot{
			ID:             id,
			PixelCentroid:  centroid,
			WorldApprox:    PixelToApproxWorld(centroid, in, opts.PlaneDistance),
			AreaPixels:     area,
			MaxTemperature: maxEnclosedTemperature(grid, contour),
			Contour:        contour,
		})
		id++
	}
	return spots
}

// maxEnclosedTemperature scans grid cells enclosed by the contour
// (boundary included) and returns the hottest sample.
func maxEnclosedTemperature(grid *thermal.Grid, contour []geometry.PointInt) float64 {
	box := geometry.BoundingBox(contour)

	x0, y0 := max(box.X, 0), max(box.Y, 0)
	x1 := min(box.X+box.Width, grid.Width-1)
	y1 := min(box.Y+box.Height, grid.Height-1)

	maxTemp := 0.0
	found := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := geometry.PointInt{X: x, Y: y}
			if !geometry.PointInPolygon(p.ToFloat(), contour) && !geometry.PointOnPolygon(p, contour) {
				continue
			}
			if t := grid.At(x, y); !found || t > maxTemp {
				maxTemp = t
				found = true
			}
		}
	}
	if !found {
		// Degenerate boundary outside the grid; fall back to in-bounds vertices.
		for _, p := range contour {
			if grid.InBounds(p.X, p.Y) {
				if t := grid.At(p.X, p.Y); !found || t > maxTemp {
					maxTemp = t
					found = true
				}
			}
		}
	}
	return maxTemp
}
