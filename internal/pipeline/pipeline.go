// Package pipeline runs the per-frame processing chain: segmentation,
// hotspot extraction, target grouping, and aim solving. Every stage is
// a pure function of its inputs; the pipeline holds no state across
// frames.
package pipeline

import (
	"fmt"

	"fire-aimer/internal/cluster"
	"fire-aimer/internal/config"
	"fire-aimer/internal/gimbal"
	"fire-aimer/internal/hotspot"
	"fire-aimer/internal/segment"
	"fire-aimer/internal/thermal"
)

// Result holds the per-frame detection output. Targets are sorted by
// severity, most severe first.
type Result struct {
	HotSpots []hotspot.HotSpot
	Targets  []cluster.SprayTarget
}

// Primary returns the most severe target, if any.
func (r *Result) Primary() (cluster.SprayTarget, bool) {
	if r == nil || len(r.Targets) == 0 {
		return cluster.SprayTarget{}, false
	}
	return r.Targets[0], true
}

// Process runs one frame through the detection chain. Invalid input
// produces an empty result alongside the error; callers log the
// warning and carry on with no targets.
func Process(grid *thermal.Grid, params *config.Params) (*Result, error) {
	seg, err := segment.Segment(grid, params.SegmentOptions())
	if err != nil {
		return &Result{}, fmt.Errorf("process frame: %w", err)
	}
	defer seg.Close()

	spots := hotspot.Extract(grid, seg.Contours, params.Intrinsics(), params.HotspotOptions())

	return &Result{
		HotSpots: spots,
		Targets:  cluster.GroupTargets(spots, params.GetGroupingDistance()),
	}, nil
}

// AimAtPrimary computes the gimbal command for the most severe target.
// Returns false when the frame produced no targets; the gimbal should
// then hold its pose.
func AimAtPrimary(res *Result, grid *thermal.Grid, params *config.Params, current gimbal.Pose) (gimbal.Angles, bool) {
	primary, ok := res.Primary()
	if !ok {
		return gimbal.Angles{}, false
	}
	cam := params.GimbalCamera(grid.Width, grid.Height)
	return gimbal.Solve(primary.PixelAimPoint, cam, current, params.NozzleOffset()), true
}
