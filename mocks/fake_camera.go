//go:build !release

package mocks

import (
	"context"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fastlab-io/server/plugins/instrument"
)

// FakeCamera is a controllable camera session.
// FrameSource receives 1-based read call number.
type FakeCamera struct {
	sync.Mutex

	FrameSource func(call int) ([]*instrument.Frame, error)
	ExposureErr error
	GainErr     error
	CloseErr    error

	exposures []float64
	gains     []float64
	reads     int
	closed    int32
}

// ReadFrames returns frames from the source or a single gray frame.
func (c *FakeCamera) ReadFrames(count int) ([]*instrument.Frame, error) {
	c.Lock()
	c.reads++
	call := c.reads
	source := c.FrameSource
	c.Unlock()

	if nil == source {
		return []*instrument.Frame{FakeNewFrame(int64(call), 32, 24)}, nil
	}

	return source(call)
}

// SetExposureTime records the value.
func (c *FakeCamera) SetExposureTime(timeUs float64) error {
	c.Lock()
	defer c.Unlock()
	c.exposures = append(c.exposures, timeUs)
	return c.ExposureErr
}

// SetGain records the value.
func (c *FakeCamera) SetGain(gain float64) error {
	c.Lock()
	defer c.Unlock()
	c.gains = append(c.gains, gain)
	return c.GainErr
}

// Close counts releases.
func (c *FakeCamera) Close() error {
	atomic.AddInt32(&c.closed, 1)
	return c.CloseErr
}

// Exposures returns recorded exposure calls.
func (c *FakeCamera) Exposures() []float64 {
	c.Lock()
	defer c.Unlock()
	return append([]float64{}, c.exposures...)
}

// Gains returns recorded gain calls.
func (c *FakeCamera) Gains() []float64 {
	c.Lock()
	defer c.Unlock()
	return append([]float64{}, c.gains...)
}

// Reads returns number of frame reads.
func (c *FakeCamera) Reads() int {
	c.Lock()
	defer c.Unlock()
	return c.reads
}

// Closed returns number of releases.
func (c *FakeCamera) Closed() int {
	return int(atomic.LoadInt32(&c.closed))
}

// FakeBareCamera is a camera session without gain control and without Close.
type FakeBareCamera struct {
	Frames []*instrument.Frame
}

// ReadFrames returns configured frames.
func (c *FakeBareCamera) ReadFrames(int) ([]*instrument.Frame, error) {
	return c.Frames, nil
}

// SetExposureTime does nothing.
func (c *FakeBareCamera) SetExposureTime(float64) error {
	return nil
}

// FakeCameraDialer opens fake camera sessions.
type FakeCameraDialer struct {
	Camera instrument.ICamera
	Err    error
	Delay  time.Duration

	dials int32
}

// Dial returns configured camera or error.
func (d *FakeCameraDialer) Dial(ctx context.Context, host string, port int) (instrument.ICamera, error) {
	atomic.AddInt32(&d.dials, 1)
	if d.Delay > 0 {
		time.Sleep(d.Delay)
	}

	if nil != d.Err {
		return nil, d.Err
	}

	return d.Camera, nil
}

// Dials returns number of connection attempts.
func (d *FakeCameraDialer) Dials() int {
	return int(atomic.LoadInt32(&d.dials))
}

// FakeNewFrame creates a frame with a horizontal gradient.
func FakeNewFrame(counter int64, width int, height int) *instrument.Frame {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x*255)/width + int(counter))})
		}
	}

	return instrument.NewFrame(counter, img)
}
