package plico

import (
	"context"
	"net"
	"strconv"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/plugins/instrument"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IMotorBackend defines motor served over the protocol.
type IMotorBackend interface {
	Axis(axis int) (instrument.IMotor, error)
}

// MotorAxes serves a fixed set of axes.
type MotorAxes map[int]instrument.IMotor

// Axis returns axis by its number.
func (m MotorAxes) Axis(axis int) (instrument.IMotor, error) {
	a, ok := m[axis]
	if !ok {
		return nil, &ErrUnknownAxis{Axis: axis}
	}

	return a, nil
}

// ConstructServer has data required for a new instruments server.
// Either of instruments can be omitted.
type ConstructServer struct {
	Name   string
	Camera instrument.ICamera
	Motor  IMotorBackend
	Logger common.ILoggerProvider
}

// Server exposes local instruments to remote clients.
type Server struct {
	grpc   *grpc.Server
	logger common.ILoggerProvider
}

// Served camera.
type cameraBackend struct {
	name   string
	camera instrument.ICamera
	logger common.ILoggerProvider
}

// Served motor.
type motorBackend struct {
	name   string
	motor  IMotorBackend
	logger common.ILoggerProvider
}

// NewServer constructs a new instruments server.
func NewServer(ctor *ConstructServer) *Server {
	s := &Server{
		grpc: grpc.NewServer(
			grpc.MaxRecvMsgSize(maxMessageSize),
			grpc.MaxSendMsgSize(maxMessageSize)),
		logger: ctor.Logger,
	}

	if nil != ctor.Camera {
		s.grpc.RegisterService(&cameraServiceDesc, &cameraBackend{
			name:   ctor.Name,
			camera: ctor.Camera,
			logger: ctor.Logger,
		})
	}

	if nil != ctor.Motor {
		s.grpc.RegisterService(&motorServiceDesc, &motorBackend{
			name:   ctor.Name,
			motor:  ctor.Motor,
			logger: ctor.Logger,
		})
	}

	return s
}

// Serve accepts connections until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("Serving instruments", common.LogURLToken, lis.Addr().String())
	return s.grpc.Serve(lis)
}

// Stop gracefully stops the server.
func (s *Server) Stop() {
	s.grpc.GracefulStop()
}

// Builds unary handler for a typed request.
func unary[Req any](service string, method string,
	call func(srv interface{}, req *Req) (interface{}, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error,
			interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, status.Error(codes.InvalidArgument, err.Error())
			}

			if nil == interceptor {
				return call(srv, in)
			}

			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(service, method)}
			return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv, req.(*Req))
			})
		},
	}
}

// Camera handlers.

type cameraHandler interface {
	connect(*ConnectRequest) (interface{}, error)
	readFrames(*ReadFramesRequest) (interface{}, error)
	setExposureTime(*ValueRequest) (interface{}, error)
	setGain(*ValueRequest) (interface{}, error)
}

var cameraServiceDesc = grpc.ServiceDesc{
	ServiceName: CameraService,
	HandlerType: (*cameraHandler)(nil),
	Methods: []grpc.MethodDesc{
		unary(CameraService, methodConnect, func(srv interface{}, req *ConnectRequest) (interface{}, error) {
			return srv.(cameraHandler).connect(req)
		}),
		unary(CameraService, methodReadFrames, func(srv interface{}, req *ReadFramesRequest) (interface{}, error) {
			return srv.(cameraHandler).readFrames(req)
		}),
		unary(CameraService, methodSetExposureTime, func(srv interface{}, req *ValueRequest) (interface{}, error) {
			return srv.(cameraHandler).setExposureTime(req)
		}),
		unary(CameraService, methodSetGain, func(srv interface{}, req *ValueRequest) (interface{}, error) {
			return srv.(cameraHandler).setGain(req)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "plico/camera",
}

func (b *cameraBackend) connect(*ConnectRequest) (interface{}, error) {
	b.logger.Debug("Camera session opened")
	return &ConnectReply{Name: b.name}, nil
}

func (b *cameraBackend) readFrames(req *ReadFramesRequest) (interface{}, error) {
	count := req.Count
	if count < 1 {
		count = 1
	}

	frames, err := b.camera.ReadFrames(count)
	if err != nil {
		b.logger.Error("Failed to read frames", err)
		return nil, toStatus(err)
	}

	return &ReadFramesReply{Frames: frames}, nil
}

func (b *cameraBackend) setExposureTime(req *ValueRequest) (interface{}, error) {
	err := b.camera.SetExposureTime(req.Value)
	if err != nil {
		b.logger.Error("Failed to set exposure time", err)
		return nil, toStatus(err)
	}

	return &Empty{}, nil
}

func (b *cameraBackend) setGain(req *ValueRequest) (interface{}, error) {
	setter, ok := b.camera.(instrument.IGainSetter)
	if !ok {
		return nil, status.Error(codes.Unimplemented, "gain is not supported")
	}

	err := setter.SetGain(req.Value)
	if err != nil {
		b.logger.Error("Failed to set gain", err)
		return nil, toStatus(err)
	}

	return &Empty{}, nil
}

// Motor handlers.

type motorHandler interface {
	connect(*ConnectRequest) (interface{}, error)
	move(*ValueRequest) (interface{}, error)
	getPosition(*AxisRequest) (interface{}, error)
	setSpeed(*ValueRequest) (interface{}, error)
}

var motorServiceDesc = grpc.ServiceDesc{
	ServiceName: MotorService,
	HandlerType: (*motorHandler)(nil),
	Methods: []grpc.MethodDesc{
		unary(MotorService, methodConnect, func(srv interface{}, req *ConnectRequest) (interface{}, error) {
			return srv.(motorHandler).connect(req)
		}),
		unary(MotorService, methodMove, func(srv interface{}, req *ValueRequest) (interface{}, error) {
			return srv.(motorHandler).move(req)
		}),
		unary(MotorService, methodGetPosition, func(srv interface{}, req *AxisRequest) (interface{}, error) {
			return srv.(motorHandler).getPosition(req)
		}),
		unary(MotorService, methodSetSpeed, func(srv interface{}, req *ValueRequest) (interface{}, error) {
			return srv.(motorHandler).setSpeed(req)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "plico/motor",
}

func (b *motorBackend) connect(req *ConnectRequest) (interface{}, error) {
	_, err := b.motor.Axis(req.Axis)
	if err != nil {
		b.logger.Warn("Unknown axis requested", common.LogAxisToken, strconv.Itoa(req.Axis))
		return nil, toStatus(err)
	}

	b.logger.Debug("Motor session opened", common.LogAxisToken, strconv.Itoa(req.Axis))
	return &ConnectReply{Name: b.name}, nil
}

func (b *motorBackend) move(req *ValueRequest) (interface{}, error) {
	a, err := b.motor.Axis(req.Axis)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := a.Move(req.Value); err != nil {
		b.logger.Error("Failed to move axis", err, common.LogAxisToken, strconv.Itoa(req.Axis))
		return nil, toStatus(err)
	}

	return &Empty{}, nil
}

func (b *motorBackend) getPosition(req *AxisRequest) (interface{}, error) {
	a, err := b.motor.Axis(req.Axis)
	if err != nil {
		return nil, toStatus(err)
	}

	p, err := a.GetPosition()
	if err != nil {
		b.logger.Error("Failed to get axis position", err, common.LogAxisToken, strconv.Itoa(req.Axis))
		return nil, toStatus(err)
	}

	return &PositionReply{Position: p}, nil
}

func (b *motorBackend) setSpeed(req *ValueRequest) (interface{}, error) {
	a, err := b.motor.Axis(req.Axis)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := a.SetSpeed(req.Value); err != nil {
		b.logger.Error("Failed to set axis speed", err, common.LogAxisToken, strconv.Itoa(req.Axis))
		return nil, toStatus(err)
	}

	return &Empty{}, nil
}
