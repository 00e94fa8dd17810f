package plico

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/fastlab-io/server/mocks"
	"github.com/fastlab-io/server/plugins/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// PlicoTestSuite runs clients against a local server.
type PlicoTestSuite struct {
	suite.Suite

	camera *mocks.FakeCamera
	motor  *mocks.FakeMotor
	server *Server
	port   int
}

// SetupTest starts a new server.
func (s *PlicoTestSuite) SetupTest() {
	s.camera = &mocks.FakeCamera{}
	s.motor = &mocks.FakeMotor{Position: 7.5}
	s.server = NewServer(&ConstructServer{
		Name:   "test",
		Camera: s.camera,
		Motor:  MotorAxes{1: s.motor},
		Logger: mocks.FakeNewLogger(nil),
	})

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	s.port = lis.Addr().(*net.TCPAddr).Port

	go s.server.Serve(lis) // nolint: errcheck
}

// TearDownTest stops the server.
func (s *PlicoTestSuite) TearDownTest() {
	s.server.Stop()
}

// Tests camera commands.
func (s *PlicoTestSuite) TestCamera() {
	c, err := DialCamera(context.Background(), "127.0.0.1", s.port)
	s.Require().NoError(err)
	defer c.(*cameraClient).Close() // nolint: errcheck

	frames, err := c.ReadFrames(1)
	s.Require().NoError(err)
	s.Require().Len(frames, 1)
	s.Equal(32, frames[0].Width)
	s.Equal(32*24, len(frames[0].Pixels))

	s.NoError(c.SetExposureTime(5000))
	s.Equal([]float64{5000}, s.camera.Exposures())

	s.NoError(c.(instrument.IGainSetter).SetGain(2.5))
	s.Equal([]float64{2.5}, s.camera.Gains())

	s.camera.ExposureErr = errors.New("out of range")
	s.EqualError(c.SetExposureTime(1), "out of range")
}

// Tests empty acquisition.
func (s *PlicoTestSuite) TestCameraNoFrames() {
	s.camera.FrameSource = func(int) ([]*instrument.Frame, error) {
		return nil, nil
	}

	c, err := DialCamera(context.Background(), "127.0.0.1", s.port)
	s.Require().NoError(err)

	frames, err := c.ReadFrames(1)
	s.NoError(err)
	s.Empty(frames)
}

// Tests motor commands.
func (s *PlicoTestSuite) TestMotor() {
	m, err := DialMotor(context.Background(), "127.0.0.1", s.port, 1)
	s.Require().NoError(err)
	defer m.(*motorClient).Close() // nolint: errcheck

	s.NoError(m.Move(-12.25))
	s.Equal([]float64{-12.25}, s.motor.Moves())

	p, err := m.GetPosition()
	s.NoError(err)
	s.Equal(7.5, p)

	s.NoError(m.SetSpeed(3))
	s.Equal([]float64{3}, s.motor.Speeds())

	s.motor.MoveErr = errors.New("limit switch")
	s.EqualError(m.Move(1), "limit switch")
}

// Tests unknown axis.
func (s *PlicoTestSuite) TestMotorUnknownAxis() {
	_, err := DialMotor(context.Background(), "127.0.0.1", s.port, 4)
	s.EqualError(err, "axis 4 is not available")
}

// Tests instruments protocol.
func TestPlicoSuite(t *testing.T) {
	suite.Run(t, new(PlicoTestSuite))
}

// Tests camera without gain support.
func TestGainUnsupported(t *testing.T) {
	srv := NewServer(&ConstructServer{
		Camera: &mocks.FakeBareCamera{},
		Logger: mocks.FakeNewLogger(nil),
	})

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(lis) // nolint: errcheck
	defer srv.Stop()

	c, err := DialCamera(context.Background(), "127.0.0.1", lis.Addr().(*net.TCPAddr).Port)
	require.NoError(t, err)

	err = c.(instrument.IGainSetter).SetGain(1)
	_, ok := err.(*instrument.ErrUnsupportedCommand)
	assert.True(t, ok)

	_, err = DialMotor(context.Background(), "127.0.0.1", lis.Addr().(*net.TCPAddr).Port, 1)
	assert.Error(t, err)
}

// Tests unreachable server.
func TestDialUnreachable(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := lis.Addr().(*net.TCPAddr).Port
	lis.Close() // nolint: errcheck

	_, err = DialCamera(context.Background(), "127.0.0.1", port)
	assert.Error(t, err)
}

// Tests status conversion.
func TestStatusConversion(t *testing.T) {
	assert.Nil(t, fromStatus(nil))
	assert.Nil(t, toStatus(nil))

	plain := errors.New("plain")
	assert.Equal(t, plain, fromStatus(plain))

	e := fromStatus(toStatus(&ErrUnknownAxis{Axis: 2}))
	assert.EqualError(t, e, "axis 2 is not available")
}
