// Package instrument contains definitions of remote instrument clients.
package instrument

import "context"

// ICamera defines connected camera session.
// Handle may also implement io.Closer, which is used for releasing it.
type ICamera interface {
	// ReadFrames acquires up to count frames. Empty result means the camera had nothing to give.
	ReadFrames(count int) ([]*Frame, error)
	// SetExposureTime updates exposure time, in microseconds.
	SetExposureTime(timeUs float64) error
}

// IGainSetter defines camera which is able to change its gain.
// Not every camera server exposes it, so it's checked on a connected handle.
type IGainSetter interface {
	SetGain(gain float64) error
}

// CameraDialer opens a new camera session.
type CameraDialer func(ctx context.Context, host string, port int) (ICamera, error)
