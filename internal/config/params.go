// Package config loads deployment parameters for the fire-aiming
// pipeline. All fields are optional; anything missing falls back to
// the hardcoded defaults with a warning, never a hard failure.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"fire-aimer/internal/gimbal"
	"fire-aimer/internal/hotspot"
	"fire-aimer/internal/segment"

	"gonum.org/v1/gonum/mat"
)

// Defaults for the reference deployment.
const (
	DefaultThresholdCelsius  = 250.0
	DefaultMinAreaPixels     = 30.0
	DefaultGroupingDistanceM = 1.0
	DefaultPlaneDistanceM    = 8.0
	DefaultHFOVDegrees       = 60.0
	DefaultVFOVDegrees       = 45.0
)

// defaultCameraMatrix is the fallback 3x3 camera matrix, row-major.
var defaultCameraMatrix = []float64{
	500, 0, 320,
	0, 500, 240,
	0, 0, 1,
}

// Params is the root configuration. Pointer fields distinguish
// "absent" from "explicitly zero" so partial config files are safe.
type Params struct {
	FireTemperatureThresholdCelsius *float64 `json:"fire_temperature_threshold_celsius,omitempty"`
	MinHotspotAreaPixels            *float64 `json:"min_hotspot_area_pixels,omitempty"`
	MaxGroupingDistanceMeters       *float64 `json:"max_grouping_distance_meters,omitempty"`
	AssumedDistanceToFirePlaneM     *float64 `json:"assumed_distance_to_fire_plane_meters,omitempty"`

	// CameraMatrix is the 3x3 pinhole matrix, row-major (9 values).
	CameraMatrix *[]float64 `json:"camera_matrix,omitempty"`

	HFOVDegrees *float64 `json:"hfov_degrees,omitempty"`
	VFOVDegrees *float64 `json:"vfov_degrees,omitempty"`

	NozzleOffsetAzimuthDegrees *float64 `json:"nozzle_offset_azimuth_degrees,omitempty"`
	NozzleOffsetPitchDegrees   *float64 `json:"nozzle_offset_pitch_degrees,omitempty"`

	// PitchSign selects pitch polarity: +1 if increasing pixel Y
	// increases pitch, -1 if it decreases pitch.
	PitchSign *float64 `json:"pitch_sign,omitempty"`
}

// Load reads params from a JSON file. The returned Params is always
// usable: on any failure it carries the defaults and the error is
// informational. Missing fields are logged once as a warning.
func Load(path string) (*Params, error) {
	p := &Params{}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: could not read config %s, using defaults: %v", path, err)
		return p, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, p); err != nil {
		log.Printf("Warning: malformed config %s, using defaults: %v", path, err)
		return &Params{}, fmt.Errorf("parse config: %w", err)
	}

	if missing := p.missingFields(); len(missing) > 0 {
		log.Printf("Warning: config %s missing %s, using defaults", path, strings.Join(missing, ", "))
	}
	return p, nil
}

func (p *Params) missingFields() []string {
	var missing []string
	add := func(ok bool, name string) {
		if !ok {
			missing = append(missing, name)
		}
	}
	add(p.FireTemperatureThresholdCelsius != nil, "fire_temperature_threshold_celsius")
	add(p.MinHotspotAreaPixels != nil, "min_hotspot_area_pixels")
	add(p.MaxGroupingDistanceMeters != nil, "max_grouping_distance_meters")
	add(p.AssumedDistanceToFirePlaneM != nil, "assumed_distance_to_fire_plane_meters")
	add(p.CameraMatrix != nil, "camera_matrix")
	add(p.HFOVDegrees != nil, "hfov_degrees")
	add(p.VFOVDegrees != nil, "vfov_degrees")
	add(p.NozzleOffsetAzimuthDegrees != nil, "nozzle_offset_azimuth_degrees")
	add(p.NozzleOffsetPitchDegrees != nil, "nozzle_offset_pitch_degrees")
	add(p.PitchSign != nil, "pitch_sign")
	return missing
}

func value(ptr *float64, def float64) float64 {
	if ptr != nil {
		return *ptr
	}
	return def
}

// GetThresholdCelsius returns the fire temperature threshold.
func (p *Params) GetThresholdCelsius() float64 {
	return value(p.FireTemperatureThresholdCelsius, DefaultThresholdCelsius)
}

// GetMinAreaPixels returns the minimum hotspot area.
func (p *Params) GetMinAreaPixels() float64 {
	return value(p.MinHotspotAreaPixels, DefaultMinAreaPixels)
}

// GetGroupingDistance returns the maximum grouping distance in meters.
func (p *Params) GetGroupingDistance() float64 {
	return value(p.MaxGroupingDistanceMeters, DefaultGroupingDistanceM)
}

// GetPlaneDistance returns the assumed distance to the fire plane.
func (p *Params) GetPlaneDistance() float64 {
	return value(p.AssumedDistanceToFirePlaneM, DefaultPlaneDistanceM)
}

// GetPitchSign returns the configured pitch polarity.
func (p *Params) GetPitchSign() float64 {
	s := value(p.PitchSign, gimbal.PitchDown)
	if s < 0 {
		return gimbal.PitchUp
	}
	return gimbal.PitchDown
}

// CameraMatrixDense returns the configured (or default) camera matrix
// as a 3x3 dense matrix.
func (p *Params) CameraMatrixDense() *mat.Dense {
	vals := defaultCameraMatrix
	if p.CameraMatrix != nil && len(*p.CameraMatrix) == 9 {
		vals = *p.CameraMatrix
	} else if p.CameraMatrix != nil {
		log.Printf("Warning: camera_matrix has %d values, want 9; using default", len(*p.CameraMatrix))
	}
	out := make([]float64, 9)
	copy(out, vals)
	return mat.NewDense(3, 3, out)
}

// Intrinsics resolves the camera matrix into pinhole intrinsics.
func (p *Params) Intrinsics() hotspot.Intrinsics {
	in, err := hotspot.IntrinsicsFromMatrix(p.CameraMatrixDense())
	if err != nil {
		// Unreachable with a 3x3 dense matrix, but stay fail-soft.
		log.Printf("Warning: %v; projection disabled", err)
		return hotspot.Intrinsics{}
	}
	return in
}

// SegmentOptions builds segmentation options from the params.
func (p *Params) SegmentOptions() segment.Options {
	opts := segment.DefaultOptions()
	opts.ThresholdCelsius = p.GetThresholdCelsius()
	return opts
}

// HotspotOptions builds hotspot extraction options from the params.
func (p *Params) HotspotOptions() hotspot.Options {
	return hotspot.Options{
		MinAreaPixels: p.GetMinAreaPixels(),
		PlaneDistance: p.GetPlaneDistance(),
	}
}

// GimbalCamera builds the solver camera geometry for a frame of the
// given dimensions.
func (p *Params) GimbalCamera(imageWidth, imageHeight int) gimbal.Camera {
	return gimbal.Camera{
		ImageWidth:  imageWidth,
		ImageHeight: imageHeight,
		HFOVDegrees: value(p.HFOVDegrees, DefaultHFOVDegrees),
		VFOVDegrees: value(p.VFOVDegrees, DefaultVFOVDegrees),
		PitchSign:   p.GetPitchSign(),
	}
}

// NozzleOffset returns the calibrated nozzle offset.
func (p *Params) NozzleOffset() gimbal.NozzleOffset {
	return gimbal.NozzleOffset{
		AzimuthDegrees: value(p.NozzleOffsetAzimuthDegrees, 0),
		PitchDegrees:   value(p.NozzleOffsetPitchDegrees, 0),
	}
}
