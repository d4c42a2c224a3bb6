// Package main provides the entry point for the fire-aimer service:
// it reads thermal frames, detects and ranks spray targets, and logs
// the gimbal command for the actuator driver.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fire-aimer/internal/camera"
	"fire-aimer/internal/config"
	"fire-aimer/internal/gimbal"
	"fire-aimer/internal/overlay"
	"fire-aimer/internal/pipeline"
	"fire-aimer/internal/store"
	"fire-aimer/internal/thermal"
	"fire-aimer/internal/version"

	"gocv.io/x/gocv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		configPath = flag.String("config", "config/params.json", "deployment parameter file")
		source     = flag.String("source", "", "capture device index or RTSP URL")
		imagePath  = flag.String("image", "", "replay a thermal snapshot instead of capturing")
		dbPath     = flag.String("db", "", "sqlite detection log path (empty = disabled)")
		annotated  = flag.String("annotated", "", "write the last annotated frame to this path")
		frames     = flag.Int("frames", 0, "number of frames to process (0 = until interrupted)")
		interval   = flag.Duration("interval", 500*time.Millisecond, "delay between frames")
	)
	flag.Parse()

	log.Printf("fire-aimer %s (%s) starting", version.Version, version.GitCommit)

	params, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Continuing with default parameters")
	}

	src := newSource(*imagePath, *source)
	defer src.Close()

	var detLog *store.Store
	if *dbPath != "" {
		detLog, err = store.Open(*dbPath)
		if err != nil {
			log.Fatalf("Detection log unavailable: %v", err)
		}
		defer detLog.Close()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Gimbal pose feedback comes from the actuator layer; without it
	// the solver works relative to the boot pose.
	currentPose := gimbal.Pose{}

	processed := 0
	for *frames == 0 || processed < *frames {
		select {
		case <-stop:
			log.Printf("Interrupted after %d frames", processed)
			return
		case <-time.After(*interval):
		}

		grid, err := src.ReadFrame()
		if err != nil {
			log.Printf("Warning: frame read failed: %v", err)
			continue
		}

		result, err := pipeline.Process(grid, params)
		if err != nil {
			log.Printf("Warning: %v", err)
		}

		var command *gimbal.Angles
		if angles, ok := pipeline.AimAtPrimary(result, grid, params, currentPose); ok {
			command = &angles
			primary, _ := result.Primary()
			log.Printf("Primary target pixel (%.1f, %.1f) severity %.0f -> azimuth %.2f pitch %.2f",
				primary.PixelAimPoint.X, primary.PixelAimPoint.Y, primary.Severity,
				angles.TargetAzimuthDegrees, angles.TargetPitchDegrees)
		} else {
			log.Printf("No spray targets detected")
		}

		if detLog != nil {
			if _, err := detLog.RecordFrame(time.Now(), len(result.HotSpots), result.Targets, command); err != nil {
				log.Printf("Warning: detection log write failed: %v", err)
			}
		}

		if *annotated != "" {
			writeAnnotated(*annotated, grid, result)
		}

		processed++
	}
}

// newSource picks the frame source: snapshot replay when an image path
// is given, live capture otherwise.
func newSource(imagePath, captureSource string) camera.Source {
	opts := thermal.DefaultLoadOptions()

	var src camera.Source
	identifier := captureSource
	if imagePath != "" {
		src = camera.NewImageSource(opts)
		identifier = imagePath
	} else {
		src = camera.NewVideoSource(opts)
	}

	if err := src.Open(identifier); err != nil {
		log.Fatalf("Frame source unavailable: %v", err)
	}
	return src
}

// writeAnnotated renders the detection overlay and writes it to disk.
func writeAnnotated(path string, grid *thermal.Grid, result *pipeline.Result) {
	display := overlay.Colorize(grid)
	defer display.Close()
	overlay.Draw(&display, result.HotSpots, result.Targets)
	if ok := gocv.IMWrite(path, display); !ok {
		log.Printf("Warning: could not write annotated frame to %s", path)
	}
}
