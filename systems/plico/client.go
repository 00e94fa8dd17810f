package plico

import (
	"context"
	"fmt"

	"github.com/fastlab-io/server/plugins/instrument"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	// Frames can be large, default gRPC limit is 4MB.
	maxMessageSize = 128 << 20
)

// Generic instrument session.
type session struct {
	conn    *grpc.ClientConn
	service string
}

// Opens a new connection and performs Connect call.
func openSession(ctx context.Context, service string, host string, port int, req *ConnectRequest) (*session, error) {
	conn, err := grpc.NewClient(fmt.Sprintf("%s:%d", host, port),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.CallContentSubtype(CodecName),
			grpc.MaxCallRecvMsgSize(maxMessageSize),
			grpc.MaxCallSendMsgSize(maxMessageSize)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}

	s := &session{conn: conn, service: service}
	err = s.invoke(ctx, methodConnect, req, &ConnectReply{})
	if err != nil {
		conn.Close() // nolint: errcheck, gosec
		return nil, err
	}

	return s, nil
}

// Performs a single call.
func (s *session) invoke(ctx context.Context, method string, req interface{}, reply interface{}) error {
	return fromStatus(s.conn.Invoke(ctx, fullMethod(s.service, method), req, reply))
}

// Close releases the connection.
func (s *session) Close() error {
	return s.conn.Close()
}

// Camera client.
type cameraClient struct {
	*session
}

// DialCamera connects to the camera server.
func DialCamera(ctx context.Context, host string, port int) (instrument.ICamera, error) {
	s, err := openSession(ctx, CameraService, host, port, &ConnectRequest{})
	if err != nil {
		return nil, err
	}

	return &cameraClient{session: s}, nil
}

// ReadFrames acquires frames.
func (c *cameraClient) ReadFrames(count int) ([]*instrument.Frame, error) {
	reply := &ReadFramesReply{}
	err := c.invoke(context.Background(), methodReadFrames, &ReadFramesRequest{Count: count}, reply)
	if err != nil {
		return nil, err
	}

	return reply.Frames, nil
}

// SetExposureTime updates exposure time.
func (c *cameraClient) SetExposureTime(timeUs float64) error {
	return c.invoke(context.Background(), methodSetExposureTime, &ValueRequest{Value: timeUs}, &Empty{})
}

// SetGain updates gain.
func (c *cameraClient) SetGain(gain float64) error {
	err := c.invoke(context.Background(), methodSetGain, &ValueRequest{Value: gain}, &Empty{})
	if e, ok := err.(*ErrRemote); ok && codes.Unimplemented == e.Code {
		return &instrument.ErrUnsupportedCommand{Name: "set_gain"}
	}

	return err
}

// Motor client bound to a single axis.
type motorClient struct {
	*session
	axis int
}

// DialMotor connects to the motor server.
func DialMotor(ctx context.Context, host string, port int, axis int) (instrument.IMotor, error) {
	s, err := openSession(ctx, MotorService, host, port, &ConnectRequest{Axis: axis})
	if err != nil {
		return nil, err
	}

	return &motorClient{session: s, axis: axis}, nil
}

// Move starts moving the axis.
func (m *motorClient) Move(position float64) error {
	return m.invoke(context.Background(), methodMove, &ValueRequest{Axis: m.axis, Value: position}, &Empty{})
}

// GetPosition returns axis position.
func (m *motorClient) GetPosition() (float64, error) {
	reply := &PositionReply{}
	err := m.invoke(context.Background(), methodGetPosition, &AxisRequest{Axis: m.axis}, reply)
	if err != nil {
		return 0, err
	}

	return reply.Position, nil
}

// SetSpeed updates axis speed.
func (m *motorClient) SetSpeed(speed float64) error {
	return m.invoke(context.Background(), methodSetSpeed, &ValueRequest{Axis: m.axis, Value: speed}, &Empty{})
}
