// Package overlay renders detection results onto a display image for
// operator review. It draws frames; it does not run a UI.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"fire-aimer/internal/cluster"
	"fire-aimer/internal/hotspot"
	"fire-aimer/internal/thermal"

	"gocv.io/x/gocv"
)

var (
	contourColor  = color.RGBA{G: 255, A: 255}
	centroidColor = color.RGBA{R: 255, A: 255}
	aimColor      = color.RGBA{R: 255, B: 255, A: 255}
	labelColor    = color.RGBA{G: 255, B: 255, A: 255}
	memberColor   = color.RGBA{A: 255}
)

// Colorize maps the temperature grid to a false-color BGR image
// (min..max normalized onto the jet colormap). The caller must Close
// the returned mat.
func Colorize(grid *thermal.Grid) gocv.Mat {
	src := grid.ToMat()
	defer src.Close()

	normalized := gocv.NewMat()
	defer normalized.Close()
	gocv.Normalize(src, &normalized, 0, 255, gocv.NormMinMax)

	gray := gocv.NewMat()
	defer gray.Close()
	normalized.ConvertTo(&gray, gocv.MatTypeCV8U)

	display := gocv.NewMat()
	gocv.ApplyColorMap(gray, &display, gocv.ColormapJet)
	return display
}

// Draw annotates the display image with hotspot contours and
// centroids, then each target's aim point, severity rank label, and
// member bounding boxes.
func Draw(display *gocv.Mat, spots []hotspot.HotSpot, targets []cluster.SprayTarget) {
	for _, spot := range spots {
		drawContour(display, spot)
		c := spot.PixelCentroid
		gocv.Circle(display, image.Pt(int(c.X), int(c.Y)), 3, centroidColor, -1)
	}

	spotByID := make(map[int]hotspot.HotSpot, len(spots))
	for _, spot := range spots {
		spotByID[spot.ID] = spot
	}

	for rank, target := range targets {
		aim := image.Pt(int(target.PixelAimPoint.X), int(target.PixelAimPoint.Y))
		gocv.Circle(display, aim, 8, aimColor, 2)
		gocv.PutText(display, fmt.Sprintf("T%d", rank+1),
			image.Pt(aim.X+10, aim.Y), gocv.FontHersheySimplex, 0.6, labelColor, 2)

		for _, id := range target.SourceHotspotIDs {
			spot, ok := spotByID[id]
			if !ok {
				continue
			}
			b := spot.Bounds()
			gocv.Rectangle(display, image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height), memberColor, 1)
		}
	}
}

func drawContour(display *gocv.Mat, spot hotspot.HotSpot) {
	if len(spot.Contour) == 0 {
		return
	}
	pts := make([]image.Point, len(spot.Contour))
	for i, p := range spot.Contour {
		pts[i] = image.Pt(p.X, p.Y)
	}
	contours := gocv.NewPointsVectorFromPoints([][]image.Point{pts})
	defer contours.Close()
	gocv.DrawContours(display, contours, 0, contourColor, 1)
}
