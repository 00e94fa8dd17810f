package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests generated frames.
func TestCameraFrames(t *testing.T) {
	c := NewCamera(16, 8)
	frames, err := c.ReadFrames(2)
	require.NoError(t, err)
	require.Len(t, frames, 2)

	assert.Equal(t, int64(1), frames[0].Counter)
	assert.Equal(t, int64(2), frames[1].Counter)
	assert.Equal(t, 16*8, len(frames[0].Pixels))
	assert.NotEqual(t, frames[0].Pixels, frames[1].Pixels)

	img, err := frames[0].ToImage()
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
}

// Tests that brightness follows exposure and gain.
func TestCameraBrightness(t *testing.T) {
	c := NewCamera(16, 1)
	base, _ := c.ReadFrames(1)

	require.NoError(t, c.SetExposureTime(defaultExposureUs/2))
	half, _ := c.ReadFrames(1)

	require.NoError(t, c.SetGain(0))
	dark, _ := c.ReadFrames(1)

	sum := func(p []uint16) int {
		s := 0
		for _, v := range p {
			s += int(v)
		}
		return s
	}

	assert.True(t, sum(half[0].Pixels) < sum(base[0].Pixels))
	assert.Equal(t, 0, sum(dark[0].Pixels))
}

// Tests rejected values.
func TestCameraOutOfRange(t *testing.T) {
	c := NewCamera(4, 4)
	assert.EqualError(t, c.SetExposureTime(0), "exposure value 0 is out of range")
	assert.EqualError(t, c.SetGain(-1), "gain value -1 is out of range")
}

// Tests axis travel.
func TestMotorAxisTravel(t *testing.T) {
	now := time.Unix(1000, 0)
	m := newMotorAxis(func() time.Time { return now })

	require.NoError(t, m.SetSpeed(10))
	require.NoError(t, m.Move(100))

	now = now.Add(2 * time.Second)
	p, err := m.GetPosition()
	require.NoError(t, err)
	assert.Equal(t, 20.0, p)

	require.NoError(t, m.Move(-5))
	now = now.Add(1 * time.Second)
	p, _ = m.GetPosition()
	assert.Equal(t, 10.0, p)

	now = now.Add(10 * time.Second)
	p, _ = m.GetPosition()
	assert.Equal(t, -5.0, p)

	assert.EqualError(t, m.SetSpeed(-1), "speed value -1 is out of range")
}

// Tests stopped axis.
func TestMotorAxisStopped(t *testing.T) {
	now := time.Unix(1000, 0)
	m := newMotorAxis(func() time.Time { return now })

	require.NoError(t, m.SetSpeed(0))
	require.NoError(t, m.Move(50))
	now = now.Add(time.Minute)
	p, _ := m.GetPosition()
	assert.Equal(t, 0.0, p)
}

// Tests motor axes numbering.
func TestNewMotor(t *testing.T) {
	m := NewMotor(2)

	_, err := m.Axis(1)
	assert.NoError(t, err)
	_, err = m.Axis(2)
	assert.NoError(t, err)
	_, err = m.Axis(3)
	assert.EqualError(t, err, "axis 3 is not available")
}
