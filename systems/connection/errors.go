package connection

import (
	"fmt"
	"time"
)

// ErrConnect defines instrument connection failure.
type ErrConnect struct {
	Instrument string
	Cause      error
}

// Error formats output.
func (e *ErrConnect) Error() string {
	return fmt.Sprintf("Could not connect to %s: %s", e.Instrument, e.Cause.Error())
}

// Unwrap returns connection failure cause.
func (e *ErrConnect) Unwrap() error {
	return e.Cause
}

// ErrConnectTimeout defines instrument connection timeout.
type ErrConnectTimeout struct {
	Instrument string
	Address    string
	Timeout    time.Duration
}

// Error formats output.
func (e *ErrConnectTimeout) Error() string {
	return fmt.Sprintf("Timeout connecting to %s server on %s after %s. Server might be unresponsive.",
		e.Instrument, e.Address, e.Timeout)
}

// ErrNoHandle defines empty session returned by a dialer.
type ErrNoHandle struct {
}

// Error formats output.
func (*ErrNoHandle) Error() string {
	return "instrument client returned no session"
}
