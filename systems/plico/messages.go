package plico

import (
	"github.com/fastlab-io/server/plugins/instrument"
)

const (
	// CameraService is the camera service name.
	CameraService = "plico.Camera"
	// MotorService is the motor service name.
	MotorService = "plico.Motor"
)

const (
	methodConnect         = "Connect"
	methodReadFrames      = "ReadFrames"
	methodSetExposureTime = "SetExposureTime"
	methodSetGain         = "SetGain"
	methodMove            = "Move"
	methodGetPosition     = "GetPosition"
	methodSetSpeed        = "SetSpeed"
)

// ConnectRequest opens a session.
type ConnectRequest struct {
	Axis int `json:"axis,omitempty"`
}

// ConnectReply describes connected instrument.
type ConnectReply struct {
	Name string `json:"name"`
}

// ReadFramesRequest asks for frames.
type ReadFramesRequest struct {
	Count int `json:"count"`
}

// ReadFramesReply has acquired frames.
type ReadFramesReply struct {
	Frames []*instrument.Frame `json:"frames"`
}

// ValueRequest carries a single command argument.
type ValueRequest struct {
	Axis  int     `json:"axis,omitempty"`
	Value float64 `json:"value"`
}

// AxisRequest addresses motor axis.
type AxisRequest struct {
	Axis int `json:"axis"`
}

// PositionReply has motor axis position.
type PositionReply struct {
	Position float64 `json:"position"`
}

// Empty is used when no data is sent back.
type Empty struct {
}

// Returns full gRPC method name.
func fullMethod(service string, method string) string {
	return "/" + service + "/" + method
}
