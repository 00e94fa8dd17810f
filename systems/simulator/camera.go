// Package simulator contains software instruments served for development.
package simulator

import (
	"fmt"
	"math"
	"sync"

	"github.com/fastlab-io/server/plugins/instrument"
)

const (
	// Bit depth of simulated sensor.
	cameraBitDepth = 12
	// Exposure used until a client changes it.
	defaultExposureUs = 10000.0
)

// ErrOutOfRange defines rejected command value.
type ErrOutOfRange struct {
	Name  string
	Value float64
}

// Error formats output.
func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("%s value %g is out of range", e.Name, e.Value)
}

// Camera produces a moving gradient which brightness depends on exposure and gain.
type Camera struct {
	sync.Mutex

	width    int
	height   int
	exposure float64
	gain     float64
	counter  int64
}

// NewCamera constructs a new simulated camera.
func NewCamera(width int, height int) *Camera {
	return &Camera{
		width:    width,
		height:   height,
		exposure: defaultExposureUs,
		gain:     1,
	}
}

// ReadFrames generates frames.
func (c *Camera) ReadFrames(count int) ([]*instrument.Frame, error) {
	c.Lock()
	defer c.Unlock()

	frames := make([]*instrument.Frame, 0, count)
	for ii := 0; ii < count; ii++ {
		c.counter++
		frames = append(frames, c.generate())
	}

	return frames, nil
}

// SetExposureTime updates exposure.
func (c *Camera) SetExposureTime(timeUs float64) error {
	if timeUs <= 0 {
		return &ErrOutOfRange{Name: "exposure", Value: timeUs}
	}

	c.Lock()
	defer c.Unlock()
	c.exposure = timeUs
	return nil
}

// SetGain updates gain.
func (c *Camera) SetGain(gain float64) error {
	if gain < 0 {
		return &ErrOutOfRange{Name: "gain", Value: gain}
	}

	c.Lock()
	defer c.Unlock()
	c.gain = gain
	return nil
}

// Generates a single frame.
func (c *Camera) generate() *instrument.Frame {
	maxValue := float64(int(1)<<cameraBitDepth - 1)
	scale := c.exposure / defaultExposureUs * c.gain

	f := &instrument.Frame{
		Counter:  c.counter,
		Width:    c.width,
		Height:   c.height,
		BitDepth: cameraBitDepth,
		Pixels:   make([]uint16, c.width*c.height),
	}

	shift := int(c.counter) % c.width
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			v := float64((x+shift)%c.width) / float64(c.width) * maxValue * scale
			f.Pixels[y*c.width+x] = uint16(math.Min(v, maxValue))
		}
	}

	return f
}
