package geometry

import "math"

// Moments holds the zeroth and first order moments of a polygon,
// computed from its boundary via Green's theorem. M00 is the signed
// area (positive for counter-clockwise winding).
type Moments struct {
	M00 float64
	M10 float64
	M01 float64
}

// PolygonMoments computes boundary moments for a closed polygon.
// The polygon is implicitly closed (last vertex connects to first).
func PolygonMoments(polygon []PointInt) Moments {
	var m Moments
	n := len(polygon)
	if n < 3 {
		return m
	}

	for i := 0; i < n; i++ {
		p0 := polygon[i]
		p1 := polygon[(i+1)%n]
		x0, y0 := float64(p0.X), float64(p0.Y)
		x1, y1 := float64(p1.X), float64(p1.Y)

		cross := x0*y1 - x1*y0
		m.M00 += cross
		m.M10 += cross * (x0 + x1)
		m.M01 += cross * (y0 + y1)
	}

	m.M00 /= 2
	m.M10 /= 6
	m.M01 /= 6
	return m
}

// PolygonArea returns the enclosed area of a closed polygon (shoelace
// formula). Always non-negative; degenerate polygons have zero area.
func PolygonArea(polygon []PointInt) float64 {
	return math.Abs(PolygonMoments(polygon).M00)
}

// PolygonCentroid returns the area centroid of a closed polygon.
// Returns false for degenerate (zero-area) polygons, where the
// centroid is undefined.
func PolygonCentroid(polygon []PointInt) (Point2D, bool) {
	m := PolygonMoments(polygon)
	if m.M00 == 0 {
		return Point2D{}, false
	}
	return Point2D{X: m.M10 / m.M00, Y: m.M01 / m.M00}, true
}

// PointInPolygon tests if a point is strictly inside a polygon using
// ray casting. Points on the boundary are not guaranteed to report
// inside; use PointOnPolygon for boundary membership.
func PointInPolygon(p Point2D, polygon []PointInt) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i].ToFloat(), polygon[j].ToFloat()

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// PointOnPolygon tests if an integer point lies on any edge segment of
// the polygon boundary.
func PointOnPolygon(p PointInt, polygon []PointInt) bool {
	n := len(polygon)
	if n == 0 {
		return false
	}
	if n == 1 {
		return p == polygon[0]
	}

	for i := 0; i < n; i++ {
		a := polygon[i]
		b := polygon[(i+1)%n]
		if onSegment(p, a, b) {
			return true
		}
	}
	return false
}

// onSegment reports whether p lies on the segment a-b, endpoints included.
func onSegment(p, a, b PointInt) bool {
	// Collinearity via integer cross product, then bounds check.
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if cross != 0 {
		return false
	}
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}
