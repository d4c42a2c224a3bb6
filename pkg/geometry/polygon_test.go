package geometry

import (
	"math"
	"testing"
)

func square(x, y, side int) []PointInt {
	return []PointInt{
		{X: x, Y: y},
		{X: x + side, Y: y},
		{X: x + side, Y: y + side},
		{X: x, Y: y + side},
	}
}

func TestPolygonMomentsSquare(t *testing.T) {
	m := PolygonMoments(square(2, 3, 4))

	if got := math.Abs(m.M00); got != 16 {
		t.Errorf("M00 = %v, want 16", got)
	}
	c, ok := PolygonCentroid(square(2, 3, 4))
	if !ok {
		t.Fatal("PolygonCentroid reported degenerate for a square")
	}
	if c.X != 4 || c.Y != 5 {
		t.Errorf("centroid = (%v, %v), want (4, 5)", c.X, c.Y)
	}
}

func TestPolygonAreaDegenerate(t *testing.T) {
	tests := []struct {
		name    string
		polygon []PointInt
	}{
		{"empty", nil},
		{"single point", []PointInt{{X: 1, Y: 1}}},
		{"two points", []PointInt{{X: 1, Y: 1}, {X: 5, Y: 5}}},
		{"collinear", []PointInt{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 4, Y: 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolygonArea(tt.polygon); got != 0 {
				t.Errorf("PolygonArea = %v, want 0", got)
			}
			if _, ok := PolygonCentroid(tt.polygon); ok {
				t.Error("PolygonCentroid should report degenerate")
			}
		})
	}
}

func TestPolygonAreaCircleApproximation(t *testing.T) {
	// 64-gon of radius 10: area within a fraction of a percent of a circle.
	const r = 10.0
	var poly []PointInt
	for i := 0; i < 64; i++ {
		a := float64(i) * 2 * math.Pi / 64
		poly = append(poly, PointInt{
			X: int(math.Round(50 + r*math.Cos(a))),
			Y: int(math.Round(50 + r*math.Sin(a))),
		})
	}

	area := PolygonArea(poly)
	want := math.Pi * r * r
	if math.Abs(area-want) > 0.1*want {
		t.Errorf("area = %v, want within 10%% of %v", area, want)
	}

	c, ok := PolygonCentroid(poly)
	if !ok {
		t.Fatal("degenerate centroid for circle polygon")
	}
	if math.Abs(c.X-50) > 1 || math.Abs(c.Y-50) > 1 {
		t.Errorf("centroid = (%v, %v), want within 1px of (50, 50)", c.X, c.Y)
	}
}

func TestPointInPolygon(t *testing.T) {
	poly := square(0, 0, 10)

	if !PointInPolygon(Point2D{X: 5, Y: 5}, poly) {
		t.Error("(5,5) should be inside")
	}
	if PointInPolygon(Point2D{X: 15, Y: 5}, poly) {
		t.Error("(15,5) should be outside")
	}
	if PointInPolygon(Point2D{X: -1, Y: -1}, poly) {
		t.Error("(-1,-1) should be outside")
	}
}

func TestPointOnPolygon(t *testing.T) {
	poly := square(0, 0, 10)

	if !PointOnPolygon(PointInt{X: 0, Y: 5}, poly) {
		t.Error("(0,5) lies on the left edge")
	}
	if !PointOnPolygon(PointInt{X: 10, Y: 10}, poly) {
		t.Error("(10,10) is a vertex")
	}
	if PointOnPolygon(PointInt{X: 5, Y: 5}, poly) {
		t.Error("(5,5) is interior, not boundary")
	}
}

func TestPoint3DDistance(t *testing.T) {
	a := Point3D{X: 1, Y: 2, Z: 2}
	b := Point3D{}
	if got := a.Distance(b); got != 3 {
		t.Errorf("Distance = %v, want 3", got)
	}
}

func TestBoundingBox(t *testing.T) {
	pts := []PointInt{{X: 3, Y: 7}, {X: 1, Y: 9}, {X: 5, Y: 2}}
	box := BoundingBox(pts)
	want := RectInt{X: 1, Y: 2, Width: 4, Height: 7}
	if box != want {
		t.Errorf("BoundingBox = %+v, want %+v", box, want)
	}

	if got := BoundingBox(nil); got != (RectInt{}) {
		t.Errorf("BoundingBox(nil) = %+v, want zero", got)
	}
}
