// Command aimtest runs the detection pipeline on a thermal snapshot
// and prints the ranked spray targets and the resulting gimbal command.
package main

import (
	"flag"
	"fmt"
	"os"

	"fire-aimer/internal/config"
	"fire-aimer/internal/gimbal"
	"fire-aimer/internal/pipeline"
	"fire-aimer/internal/thermal"
)

func main() {
	imagePath := flag.String("image", "", "Path to thermal snapshot (PNG, JPEG, TIFF, or BMP)")
	configPath := flag.String("config", "", "Deployment parameter file (empty = defaults)")
	minTemp := flag.Float64("min-temp", 20, "Temperature mapped to gray 0")
	maxTemp := flag.Float64("max-temp", 500, "Temperature mapped to gray 255")
	azimuth := flag.Float64("azimuth", 0, "Current gimbal azimuth, degrees")
	pitch := flag.Float64("pitch", 0, "Current gimbal pitch, degrees")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: aimtest -image <path> [-config params.json] [-min-temp 20] [-max-temp 500]")
		os.Exit(1)
	}

	params := &config.Params{}
	if *configPath != "" {
		params, _ = config.Load(*configPath)
	}

	opts := thermal.DefaultLoadOptions()
	opts.MinTemp = *minTemp
	opts.MaxTemp = *maxTemp

	grid, err := thermal.LoadImage(*imagePath, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load snapshot: %v\n", err)
		os.Exit(1)
	}

	lo, hi := grid.MinMax()
	fmt.Printf("Loaded %dx%d grid, temperatures %.1f..%.1f C\n", grid.Width, grid.Height, lo, hi)

	result, err := pipeline.Process(grid, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nHotspots: %d\n", len(result.HotSpots))
	for _, spot := range result.HotSpots {
		fmt.Printf("  #%d centroid (%.1f, %.1f) area %.0f px max %.1f C world (%.2f, %.2f, %.2f)\n",
			spot.ID, spot.PixelCentroid.X, spot.PixelCentroid.Y,
			spot.AreaPixels, spot.MaxTemperature,
			spot.WorldApprox.X, spot.WorldApprox.Y, spot.WorldApprox.Z)
	}

	fmt.Printf("\nSpray targets: %d\n", len(result.Targets))
	for rank, target := range result.Targets {
		fmt.Printf("  T%d severity %.0f aim (%.1f, %.1f) members %v\n",
			rank+1, target.Severity,
			target.PixelAimPoint.X, target.PixelAimPoint.Y,
			target.SourceHotspotIDs)
	}

	current := gimbal.Pose{AzimuthDegrees: *azimuth, PitchDegrees: *pitch}
	if angles, ok := pipeline.AimAtPrimary(result, grid, params, current); ok {
		fmt.Printf("\nGimbal command: azimuth %.2f pitch %.2f\n",
			angles.TargetAzimuthDegrees, angles.TargetPitchDegrees)
	} else {
		fmt.Println("\nNo target; gimbal holds pose")
	}
}
