package camera

import (
	"context"
	"fmt"
	"time"

	"github.com/corona10/goimagehash"
	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/plugins/instrument"
	"github.com/fastlab-io/server/systems/connection"
	"github.com/pkg/errors"
)

// IFrameSink defines duplex channel receiving stream frames.
// SendFrame must return ErrPeerDisconnected when the client is gone.
type IFrameSink interface {
	SendFrame(data []byte) error
	CloseWithError(reason string) error
	Done() <-chan struct{}
}

// StreamState describes stream lifecycle.
type StreamState int

const (
	// StateConnecting describes stream acquiring camera session.
	StateConnecting StreamState = iota
	// StateStreaming describes stream pushing frames.
	StateStreaming
	// StateClosingDisconnect describes stream finished by the client.
	StateClosingDisconnect
	// StateClosingError describes stream finished by a failure.
	StateClosingError
)

// String returns state name.
func (s StreamState) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateStreaming:
		return "STREAMING"
	case StateClosingDisconnect:
		return "CLOSING_DISCONNECT"
	case StateClosingError:
		return "CLOSING_ERROR"
	}

	return "UNKNOWN"
}

// Result of a single stream iteration.
type frameOutcome int

const (
	outcomeSent frameOutcome = iota
	outcomeNoFrame
	outcomeEncodeFailed
	outcomeUnchanged
)

// Data required for a new stream.
type constructStream struct {
	scope       *connection.Scope[instrument.ICamera]
	encoder     *Encoder
	logger      common.ILoggerProvider
	sink        IFrameSink
	maxFPS      int
	minDistance int
}

// Single camera stream.
type stream struct {
	*constructStream

	state    StreamState
	prevHash *goimagehash.ImageHash
	sent     int
}

// Constructs a new stream.
func newStream(ctor *constructStream) *stream {
	return &stream{
		constructStream: ctor,
		state:           StateConnecting,
	}
}

// Runs the stream until it reaches a terminal state.
// Camera session is released before run returns.
func (s *stream) run(ctx context.Context) StreamState {
	err := s.scope.With(ctx, func(cam instrument.ICamera) error {
		s.state = StateStreaming
		s.logger.Info("Camera stream started")
		return s.loop(ctx, cam)
	})

	if _, ok := errors.Cause(err).(*ErrPeerDisconnected); ok || nil == err {
		s.state = StateClosingDisconnect
		s.logger.Info("Camera stream client disconnected", common.LogValueToken, fmt.Sprintf("%d frames", s.sent))
		return s.state
	}

	reason := fmt.Sprintf("Server error: %s", err.Error())
	if StateConnecting == s.state {
		reason = err.Error()
	}

	s.state = StateClosingError
	s.logger.Error("Camera stream failed", err)

	err = s.sink.CloseWithError(reason)
	if err != nil {
		s.logger.Warn("Failed to send stream close frame", common.LogErrorToken, err.Error())
	}

	return s.state
}

// Streaming loop.
func (s *stream) loop(ctx context.Context, cam instrument.ICamera) error {
	var tick <-chan time.Time
	if s.maxFPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(s.maxFPS))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-s.sink.Done():
			return &ErrPeerDisconnected{}
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if nil != tick {
			select {
			case <-tick:
			case <-s.sink.Done():
				return &ErrPeerDisconnected{}
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		outcome, err := s.iterate(cam)
		if err != nil {
			return err
		}

		switch outcome {
		case outcomeNoFrame:
			s.logger.Warn("No frames received in stream loop")
		case outcomeUnchanged:
			s.logger.Debug("Frame skipped, no changes detected")
		case outcomeSent:
			s.sent++
		}
	}
}

// Acquires, encodes and sends a single frame.
func (s *stream) iterate(cam instrument.ICamera) (frameOutcome, error) {
	frame, err := readFrame(cam)
	if err != nil {
		if _, ok := err.(*ErrNoFrame); ok {
			return outcomeNoFrame, nil
		}

		return 0, err
	}

	img, err := s.encoder.Prepare(frame)
	if err != nil {
		s.logger.Error("Could not convert frame in stream", err)
		return outcomeEncodeFailed, nil
	}

	if s.minDistance > 0 && !s.isChanged(img) {
		return outcomeUnchanged, nil
	}

	data, err := s.encoder.Encode(img)
	if err != nil {
		s.logger.Error("Could not encode frame to JPEG in stream", err)
		return outcomeEncodeFailed, nil
	}

	err = s.sink.SendFrame(data)
	if err != nil {
		return 0, err
	}

	return outcomeSent, nil
}
