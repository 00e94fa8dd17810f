// Package connection implements scoped instrument sessions.
package connection

import (
	"context"
	"io"
	"time"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/utils"
)

// ConstructScope has data required for a new scope.
type ConstructScope[T any] struct {
	Instrument string
	Address    string
	Timeout    time.Duration
	Logger     common.ILoggerProvider
	Dial       func(ctx context.Context) (T, error)
}

// Scope opens an exclusive session for a single caller and releases it
// once the caller is done.
type Scope[T any] struct {
	instrument string
	address    string
	timeout    time.Duration
	logger     common.ILoggerProvider
	dial       func(ctx context.Context) (T, error)
}

// NewScope constructs a new scope.
func NewScope[T any](ctor *ConstructScope[T]) *Scope[T] {
	return &Scope[T]{
		instrument: ctor.Instrument,
		address:    ctor.Address,
		timeout:    ctor.Timeout,
		logger:     ctor.Logger,
		dial:       ctor.Dial,
	}
}

// Address returns instrument server address.
func (s *Scope[T]) Address() string {
	return s.address
}

// Timeout returns connection attempt limit, zero means none.
func (s *Scope[T]) Timeout() time.Duration {
	return s.timeout
}

// With dials the instrument, hands the session to fn and releases it afterwards.
// Session is released exactly once, whatever fn returns.
func (s *Scope[T]) With(ctx context.Context, fn func(T) error) error {
	handle, err := s.open(ctx)
	if err != nil {
		return err
	}

	defer s.release(handle)
	return fn(handle)
}

// Dials the instrument off the caller's goroutine.
func (s *Scope[T]) open(ctx context.Context) (T, error) {
	var zero T
	dialCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	handle, err := utils.RunBlocking(dialCtx, func() (T, error) {
		return s.dial(dialCtx)
	}, s.release)

	if err != nil {
		if s.timeout > 0 && context.DeadlineExceeded == dialCtx.Err() && nil == ctx.Err() {
			s.logger.Error("Instrument connection timed out", err, common.LogInstrumentToken, s.instrument,
				common.LogInstrumentHostToken, s.address)
			return zero, &ErrConnectTimeout{Instrument: s.instrument, Address: s.address, Timeout: s.timeout}
		}

		s.logger.Error("Failed to connect to instrument", err, common.LogInstrumentToken, s.instrument,
			common.LogInstrumentHostToken, s.address)
		return zero, &ErrConnect{Instrument: s.instrument, Cause: err}
	}

	if nil == any(handle) {
		s.logger.Error("Instrument client returned no session", nil, common.LogInstrumentToken, s.instrument,
			common.LogInstrumentHostToken, s.address)
		return zero, &ErrConnect{Instrument: s.instrument, Cause: &ErrNoHandle{}}
	}

	s.logger.Debug("Instrument session opened", common.LogInstrumentToken, s.instrument)
	return handle, nil
}

// Closes session if it supports closing.
func (s *Scope[T]) release(handle T) {
	c, ok := any(handle).(io.Closer)
	if !ok {
		return
	}

	err := c.Close()
	if err != nil {
		s.logger.Warn("Failed to release instrument session", common.LogInstrumentToken, s.instrument,
			common.LogErrorToken, err.Error())
		return
	}

	s.logger.Debug("Instrument session released", common.LogInstrumentToken, s.instrument)
}
