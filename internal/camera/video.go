package camera

import (
	"fmt"
	"image"
	"strconv"

	"fire-aimer/internal/thermal"

	"gocv.io/x/gocv"
)

// VideoSource captures frames from a camera device or RTSP stream and
// converts them to temperature grids by linear gray mapping.
//
// TODO: replace the linear mapping with the vendor SDK's radiometric
// conversion once it is available; until then the gray-to-temperature
// scale is only as accurate as the configured range.
type VideoSource struct {
	opts thermal.LoadOptions
	cap  *gocv.VideoCapture
}

// NewVideoSource creates a capture source with the given conversion
// options.
func NewVideoSource(opts thermal.LoadOptions) *VideoSource {
	return &VideoSource{opts: opts}
}

// Open connects to a device index ("0") or stream URL
// ("rtsp://..."). An empty identifier opens device 0.
func (s *VideoSource) Open(identifier string) error {
	var (
		vc  *gocv.VideoCapture
		err error
	)

	if identifier == "" {
		vc, err = gocv.OpenVideoCapture(0)
	} else if idx, convErr := strconv.Atoi(identifier); convErr == nil {
		vc, err = gocv.OpenVideoCapture(idx)
	} else {
		vc, err = gocv.OpenVideoCapture(identifier)
	}
	if err != nil {
		return fmt.Errorf("open capture %q: %w", identifier, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return fmt.Errorf("capture %q did not open", identifier)
	}

	s.cap = vc
	return nil
}

// IsOpen reports whether the capture is connected.
func (s *VideoSource) IsOpen() bool {
	return s.cap != nil && s.cap.IsOpened()
}

// ReadFrame grabs one frame and converts it to a temperature grid at
// the configured sensor resolution.
func (s *VideoSource) ReadFrame() (*thermal.Grid, error) {
	if !s.IsOpen() {
		return nil, fmt.Errorf("capture not open")
	}

	frame := gocv.NewMat()
	defer frame.Close()
	if ok := s.cap.Read(&frame); !ok || frame.Empty() {
		return nil, fmt.Errorf("read frame failed")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() > 1 {
		gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(gray, &resized, image.Pt(s.opts.Width, s.opts.Height), 0, 0, gocv.InterpolationLinear)

	scale := (s.opts.MaxTemp - s.opts.MinTemp) / 255.0
	temp := gocv.NewMat()
	defer temp.Close()
	resized.ConvertToWithParams(&temp, gocv.MatTypeCV32F, float32(scale), float32(s.opts.MinTemp))

	return thermal.GridFromMat(temp)
}

// Close releases the capture.
func (s *VideoSource) Close() error {
	if s.cap == nil {
		return nil
	}
	err := s.cap.Close()
	s.cap = nil
	return err
}
