// Package hotspot reduces segmented fire regions to geometric and
// thermal descriptors with an approximate 3-D world position.
package hotspot

import (
	"fmt"

	"fire-aimer/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// Intrinsics holds the pinhole camera parameters used to back-project
// pixels onto an assumed plane. The zero value is degenerate.
type Intrinsics struct {
	Fx float64 `json:"fx"`
	Fy float64 `json:"fy"`
	Cx float64 `json:"cx"`
	Cy float64 `json:"cy"`
}

// IntrinsicsFromMatrix extracts pinhole parameters from a 3x3 camera
// matrix in the usual [fx 0 cx; 0 fy cy; 0 0 1] layout.
func IntrinsicsFromMatrix(m *mat.Dense) (Intrinsics, error) {
	if m == nil {
		return Intrinsics{}, fmt.Errorf("nil camera matrix")
	}
	rows, cols := m.Dims()
	if rows != 3 || cols != 3 {
		return Intrinsics{}, fmt.Errorf("camera matrix is %dx%d, want 3x3", rows, cols)
	}
	return Intrinsics{
		Fx: m.At(0, 0),
		Fy: m.At(1, 1),
		Cx: m.At(0, 2),
		Cy: m.At(1, 2),
	}, nil
}

// Matrix returns the intrinsics as a 3x3 camera matrix.
func (in Intrinsics) Matrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		in.Fx, 0, in.Cx,
		0, in.Fy, in.Cy,
		0, 0, 1,
	})
}

// Valid reports whether the intrinsics describe a usable projection.
// A zero focal length cannot be divided through.
func (in Intrinsics) Valid() bool {
	return in.Fx != 0 && in.Fy != 0
}

// PixelToApproxWorld back-projects a pixel onto a plane at the given
// distance. With degenerate intrinsics the raw pixel is returned with
// Z == 0, the no-valid-projection sentinel consumed by clustering.
func PixelToApproxWorld(p geometry.Point2D, in Intrinsics, distanceToPlane float64) geometry.Point3D {
	if !in.Valid() {
		return geometry.Point3D{X: p.X, Y: p.Y, Z: 0}
	}
	return geometry.Point3D{
		X: (p.X - in.Cx) * distanceToPlane / in.Fx,
		Y: (p.Y - in.Cy) * distanceToPlane / in.Fy,
		Z: distanceToPlane,
	}
}
