package plico

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrRemote defines failure reported by instrument server.
type ErrRemote struct {
	Code    codes.Code
	Message string
}

// Error formats output.
func (e *ErrRemote) Error() string {
	return e.Message
}

// ErrUnknownAxis defines axis which is not served.
type ErrUnknownAxis struct {
	Axis int
}

// Error formats output.
func (e *ErrUnknownAxis) Error() string {
	return fmt.Sprintf("axis %d is not available", e.Axis)
}

// Converts gRPC status into a plain error.
func fromStatus(err error) error {
	if nil == err {
		return nil
	}

	s, ok := status.FromError(err)
	if !ok {
		return err
	}

	return &ErrRemote{Code: s.Code(), Message: s.Message()}
}

// Converts instrument error into gRPC status.
func toStatus(err error) error {
	if nil == err {
		return nil
	}

	switch err.(type) {
	case *ErrUnknownAxis:
		return status.Error(codes.NotFound, err.Error())
	}

	return status.Error(codes.Unknown, err.Error())
}
