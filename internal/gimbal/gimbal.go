// Package gimbal converts a target pixel coordinate into an absolute
// azimuth/pitch command for the nozzle gimbal.
package gimbal

import (
	"fire-aimer/pkg/geometry"
)

// Pose is the gimbal's current reported orientation in degrees.
type Pose struct {
	AzimuthDegrees float64 `json:"azimuth_degrees"`
	PitchDegrees   float64 `json:"pitch_degrees"`
}

// Angles is an absolute commanded gimbal pose, not a delta.
type Angles struct {
	TargetAzimuthDegrees float64 `json:"target_azimuth_degrees"`
	TargetPitchDegrees   float64 `json:"target_pitch_degrees"`
}

// NozzleOffset is the fixed angular calibration between the gimbal's
// reported pose and the nozzle's actual aim point.
type NozzleOffset struct {
	AzimuthDegrees float64 `json:"azimuth_degrees"`
	PitchDegrees   float64 `json:"pitch_degrees"`
}

// Pitch polarity between image rows and the gimbal's mechanical frame.
// Which direction is "up" depends on how the gimbal is mounted, so the
// sign is deployment configuration, not a constant.
const (
	PitchDown = +1.0 // increasing pixel Y increases pitch
	PitchUp   = -1.0 // increasing pixel Y decreases pitch
)

// Camera describes the image geometry the solver maps through.
type Camera struct {
	ImageWidth  int     `json:"image_width"`
	ImageHeight int     `json:"image_height"`
	HFOVDegrees float64 `json:"hfov_degrees"`
	VFOVDegrees float64 `json:"vfov_degrees"`
	PitchSign   float64 `json:"pitch_sign"` // PitchDown or PitchUp; 0 treated as PitchDown
}

// Valid reports whether the camera geometry can be mapped through.
func (c Camera) Valid() bool {
	return c.ImageWidth > 0 && c.ImageHeight > 0 && c.HFOVDegrees > 0 && c.VFOVDegrees > 0
}

// Solve maps a target pixel onto an absolute gimbal command. The
// angular offset is linear in the pixel offset from image center,
// scaled by half the field of view, with the nozzle calibration offset
// subtracted. Invalid camera geometry returns the unchanged current
// pose, a conservative do-not-move fallback. No angle wrapping or
// mechanical-limit clamping is applied here; that belongs to the
// actuator safety layer.
func Solve(target geometry.Point2D, cam Camera, current Pose, nozzle NozzleOffset) Angles {
	if !cam.Valid() {
		return Angles{
			TargetAzimuthDegrees: current.AzimuthDegrees,
			TargetPitchDegrees:   current.PitchDegrees,
		}
	}

	sign := cam.PitchSign
	if sign == 0 {
		sign = PitchDown
	}

	cx := float64(cam.ImageWidth) / 2
	cy := float64(cam.ImageHeight) / 2

	deltaAz := ((target.X - cx) / cx) * (cam.HFOVDegrees / 2)
	deltaPitch := sign * ((target.Y - cy) / cy) * (cam.VFOVDegrees / 2)

	return Angles{
		TargetAzimuthDegrees: current.AzimuthDegrees + deltaAz - nozzle.AzimuthDegrees,
		TargetPitchDegrees:   current.PitchDegrees + deltaPitch - nozzle.PitchDegrees,
	}
}
