package providers

import (
	"context"
	"time"

	"github.com/fastlab-io/server/plugins/instrument"
)

// ICameraProvider hands an exclusive camera session to a single caller.
// Session is released once fn returns, whatever the outcome.
type ICameraProvider interface {
	WithCamera(ctx context.Context, fn func(camera instrument.ICamera) error) error
	Address() string
}

// IMotorProvider hands an exclusive motor session to a single caller.
// Session is released once fn returns, whatever the outcome.
type IMotorProvider interface {
	WithMotor(ctx context.Context, fn func(motor instrument.IMotor) error) error
	Address() string
}

// IHealthProvider defines instruments reachability checker.
type IHealthProvider interface {
	Start() error
	Stop()
	Status() []*InstrumentStatus
}

// InstrumentStatus has data about last reachability check.
type InstrumentStatus struct {
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Reachable bool      `json:"reachable"`
	Problem   string    `json:"problem,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// ISessionsProvider defines registry of active camera streams.
type ISessionsProvider interface {
	Open(remote string) string
	Close(id string)
	Count() int
	List() []*StreamSession
}

// StreamSession has data about a single active stream.
type StreamSession struct {
	ID        string    `json:"id"`
	Remote    string    `json:"remote"`
	StartedAt time.Time `json:"started_at"`
}
