// Package camera provides thermal frame acquisition. The video-backed
// source is a placeholder built on a generic capture pipeline until
// the vendor radiometric SDK is integrated; the file-backed source
// replays a still thermal snapshot for bench testing.
package camera

import (
	"fmt"

	"fire-aimer/internal/thermal"
)

// Source yields temperature grids frame by frame.
type Source interface {
	// Open prepares the source. The identifier is a device index,
	// stream URL, or file path depending on the implementation.
	Open(identifier string) error
	IsOpen() bool
	ReadFrame() (*thermal.Grid, error)
	Close() error
}

// ImageSource replays a single thermal snapshot as an endless frame
// stream. Each ReadFrame returns an independent copy.
type ImageSource struct {
	opts thermal.LoadOptions
	grid *thermal.Grid
}

// NewImageSource creates a replay source with the given conversion
// options.
func NewImageSource(opts thermal.LoadOptions) *ImageSource {
	return &ImageSource{opts: opts}
}

// Open loads the thermal snapshot at path.
func (s *ImageSource) Open(identifier string) error {
	grid, err := thermal.LoadImage(identifier, s.opts)
	if err != nil {
		return fmt.Errorf("open image source: %w", err)
	}
	s.grid = grid
	return nil
}

// IsOpen reports whether a snapshot is loaded.
func (s *ImageSource) IsOpen() bool {
	return s.grid != nil
}

// ReadFrame returns a copy of the loaded snapshot.
func (s *ImageSource) ReadFrame() (*thermal.Grid, error) {
	if s.grid == nil {
		return nil, fmt.Errorf("image source not open")
	}
	return s.grid.Clone(), nil
}

// Close releases the snapshot.
func (s *ImageSource) Close() error {
	s.grid = nil
	return nil
}
