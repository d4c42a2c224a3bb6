// Package cluster merges spatially close hotspots into unified spray
// targets and ranks them by severity.
package cluster

import (
	"math"
	"sort"

	"fire-aimer/internal/hotspot"
	"fire-aimer/pkg/geometry"
)

// SprayTarget is one or more hotspots merged by spatial proximity into
// a single aim point with an aggregate severity score.
type SprayTarget struct {
	ID               int              `json:"id"`
	PixelAimPoint    geometry.Point2D `json:"final_pixel_aim_point"`
	WorldAimPoint    geometry.Point3D `json:"final_world_aim_point_approx"` // zero vector = no valid world estimate
	SourceHotspotIDs []int            `json:"source_hotspot_ids"`
	Severity         float64          `json:"severity"`
}

// unassigned marks a hotspot not yet owned by any target.
const unassigned = -1

// WorldDistance returns the 3-D Euclidean distance between two
// approximate world positions. Either point carrying the Z == 0
// degenerate-projection sentinel yields an infinite distance, so such
// points never merge.
func WorldDistance(a, b geometry.Point3D) float64 {
	if a.Z == 0 || b.Z == 0 {
		return math.Inf(1)
	}
	return a.Distance(b)
}

// GroupTargets partitions hotspots into spray targets using
// single-link grouping from each seed: a hotspot joins the target
// whose seed is strictly closer than maxGroupingDistance in world
// space. Every hotspot ends up in exactly one target. Target IDs are
// assigned in seed-discovery order; the result is sorted by severity
// descending, ties broken by ascending ID.
func GroupTargets(spots []hotspot.HotSpot, maxGroupingDistance float64) []SprayTarget {
	if len(spots) == 0 {
		return nil
	}

	// Ownership array instead of a mutable flag on the hotspots:
	// owner[i] is the target index that absorbed spots[i].
	owner := make([]int, len(spots))
	for i := range owner {
		owner[i] = unassigned
	}

	var targets []SprayTarget
	for i := range spots {
		if owner[i] != unassigned {
			continue
		}

		seed := spots[i]
		targetIdx := len(targets)
		owner[i] = targetIdx

		memberIDs := []int{seed.ID}
		sumPixel := seed.PixelCentroid
		sumWorld := seed.WorldApprox
		severity := seed.AreaPixels * seed.MaxTemperature
		count := 1

		for j := i + 1; j < len(spots); j++ {
			if owner[j] != unassigned {
				continue
			}
			if WorldDistance(seed.WorldApprox, spots[j].WorldApprox) >= maxGroupingDistance {
				continue
			}
			owner[j] = targetIdx
			memberIDs = append(memberIDs, spots[j].ID)
			sumPixel = sumPixel.Add(spots[j].PixelCentroid)
			sumWorld = sumWorld.Add(spots[j].WorldApprox)
			severity += spots[j].AreaPixels * spots[j].MaxTemperature
			count++
		}

		worldAim := geometry.Point3D{}
		if sumWorld.Z != 0 {
			worldAim = sumWorld.Scale(1 / float64(count))
		}

		targets = append(targets, SprayTarget{
			ID:               targetIdx,
			PixelAimPoint:    sumPixel.Scale(1 / float64(count)),
			WorldAimPoint:    worldAim,
			SourceHotspotIDs: memberIDs,
			Severity:         severity,
		})
	}

	sort.Slice(targets, func(i, j int) bool {
		if targets[i].Severity != targets[j].Severity {
			return targets[i].Severity > targets[j].Severity
		}
		return targets[i].ID < targets[j].ID
	})
	return targets
}
