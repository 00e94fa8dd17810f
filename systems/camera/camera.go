// Package camera implements camera commands and frames streaming.
package camera

import (
	"context"
	"fmt"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/plugins/instrument"
	"github.com/fastlab-io/server/providers"
	"github.com/fastlab-io/server/systems/connection"
	"github.com/fastlab-io/server/utils"
	"github.com/pkg/errors"
)

const (
	// Instrument name used in messages.
	instrumentName = "camera"
)

// ICameraService defines camera commands.
type ICameraService interface {
	providers.ICameraProvider
	ReadFrame(ctx context.Context) ([]byte, error)
	SetExposureTime(ctx context.Context, timeUs float64) error
	SetGain(ctx context.Context, gain float64) error
	Stream(ctx context.Context, sink IFrameSink) StreamState
}

// ConstructCamera has data required for a new camera service.
type ConstructCamera struct {
	Settings *providers.CameraSettings
	Dialer   instrument.CameraDialer
	Logger   common.ILoggerProvider
}

// Camera service implementation.
type cameraService struct {
	scope    *connection.Scope[instrument.ICamera]
	encoder  *Encoder
	logger   common.ILoggerProvider
	settings *providers.CameraSettings
}

// NewCameraService constructs a new camera service.
func NewCameraService(ctor *ConstructCamera) ICameraService {
	s := ctor.Settings
	return &cameraService{
		scope: connection.NewScope(&connection.ConstructScope[instrument.ICamera]{
			Instrument: instrumentName,
			Address:    fmt.Sprintf("%s:%d", s.Host, s.Port),
			Logger:     ctor.Logger,
			Dial: func(ctx context.Context) (instrument.ICamera, error) {
				return ctor.Dialer(ctx, s.Host, s.Port)
			},
		}),
		encoder:  NewEncoder(s.JpegQuality, s.MaxWidth),
		logger:   ctor.Logger,
		settings: s,
	}
}

// WithCamera hands an exclusive camera session to fn.
func (c *cameraService) WithCamera(ctx context.Context, fn func(camera instrument.ICamera) error) error {
	return c.scope.With(ctx, fn)
}

// Address returns camera server address.
func (c *cameraService) Address() string {
	return c.scope.Address()
}

// ReadFrame acquires a single frame and returns it as JPEG.
func (c *cameraService) ReadFrame(ctx context.Context) ([]byte, error) {
	var data []byte
	err := c.scope.With(ctx, func(cam instrument.ICamera) error {
		frame, err := readFrame(cam)
		if err != nil {
			c.logger.Error("Failed to acquire frame", err)
			return errors.Wrap(err, "Error acquiring or encoding frame")
		}

		data, err = c.encoder.EncodeFrame(frame)
		if err != nil {
			c.logger.Error("Failed to encode frame", err)
			return errors.Wrap(err, "Error acquiring or encoding frame")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	c.logger.Debug("Frame acquired", common.LogValueToken, fmt.Sprintf("%d bytes", len(data)))
	return data, nil
}

// SetExposureTime updates camera exposure time.
func (c *cameraService) SetExposureTime(ctx context.Context, timeUs float64) error {
	return c.scope.With(ctx, func(cam instrument.ICamera) error {
		err := cam.SetExposureTime(timeUs)
		if err != nil {
			c.logger.Error("Failed to set exposure time", err, common.LogValueToken, utils.FormatFloat(timeUs))
			return errors.Wrap(err, "Could not set exposure time")
		}

		c.logger.Info("Exposure time updated", common.LogValueToken, utils.FormatFloat(timeUs))
		return nil
	})
}

// SetGain updates camera gain.
func (c *cameraService) SetGain(ctx context.Context, gain float64) error {
	return c.scope.With(ctx, func(cam instrument.ICamera) error {
		setter, ok := cam.(instrument.IGainSetter)
		if !ok {
			err := &instrument.ErrUnsupportedCommand{Name: "set_gain"}
			c.logger.Error("Camera doesn't support gain", err)
			return errors.Wrap(err, "Could not set gain")
		}

		err := setter.SetGain(gain)
		if err != nil {
			c.logger.Error("Failed to set gain", err, common.LogValueToken, utils.FormatFloat(gain))
			return errors.Wrap(err, "Could not set gain")
		}

		c.logger.Info("Gain updated", common.LogValueToken, utils.FormatFloat(gain))
		return nil
	})
}

// Stream pushes frames into the sink until the client goes away or a fatal error happens.
func (c *cameraService) Stream(ctx context.Context, sink IFrameSink) StreamState {
	s := newStream(&constructStream{
		scope:       c.scope,
		encoder:     c.encoder,
		logger:      c.logger,
		sink:        sink,
		maxFPS:      c.settings.Stream.MaxFPS,
		minDistance: c.settings.Stream.MinDistance,
	})

	return s.run(ctx)
}

// Reads a single frame from the camera.
func readFrame(cam instrument.ICamera) (*instrument.Frame, error) {
	frames, err := cam.ReadFrames(1)
	if err != nil {
		return nil, err
	}

	if 0 == len(frames) || nil == frames[0] {
		return nil, &ErrNoFrame{}
	}

	return frames[0], nil
}
