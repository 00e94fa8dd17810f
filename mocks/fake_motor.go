//go:build !release

package mocks

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fastlab-io/server/plugins/instrument"
)

// FakeMotor is a controllable motor session.
type FakeMotor struct {
	sync.Mutex

	Position    float64
	MoveErr     error
	PositionErr error
	SpeedErr    error

	moves  []float64
	speeds []float64
	polls  int
	closed int32
}

// Move records the target.
func (m *FakeMotor) Move(position float64) error {
	m.Lock()
	defer m.Unlock()
	m.moves = append(m.moves, position)
	return m.MoveErr
}

// GetPosition returns configured position.
func (m *FakeMotor) GetPosition() (float64, error) {
	m.Lock()
	defer m.Unlock()
	m.polls++
	return m.Position, m.PositionErr
}

// SetSpeed records the speed.
func (m *FakeMotor) SetSpeed(speed float64) error {
	m.Lock()
	defer m.Unlock()
	m.speeds = append(m.speeds, speed)
	return m.SpeedErr
}

// Close counts releases.
func (m *FakeMotor) Close() error {
	atomic.AddInt32(&m.closed, 1)
	return nil
}

// Moves returns recorded move calls.
func (m *FakeMotor) Moves() []float64 {
	m.Lock()
	defer m.Unlock()
	return append([]float64{}, m.moves...)
}

// Speeds returns recorded speed calls.
func (m *FakeMotor) Speeds() []float64 {
	m.Lock()
	defer m.Unlock()
	return append([]float64{}, m.speeds...)
}

// Polls returns number of position reads.
func (m *FakeMotor) Polls() int {
	m.Lock()
	defer m.Unlock()
	return m.polls
}

// Closed returns number of releases.
func (m *FakeMotor) Closed() int {
	return int(atomic.LoadInt32(&m.closed))
}

// FakeMotorDialer opens fake motor sessions.
type FakeMotorDialer struct {
	Motor instrument.IMotor
	Err   error
	Delay time.Duration

	dials int32
	axis  int32
}

// Dial returns configured motor or error.
func (d *FakeMotorDialer) Dial(ctx context.Context, host string, port int, axis int) (instrument.IMotor, error) {
	atomic.AddInt32(&d.dials, 1)
	atomic.StoreInt32(&d.axis, int32(axis))
	if d.Delay > 0 {
		time.Sleep(d.Delay)
	}

	if nil != d.Err {
		return nil, d.Err
	}

	return d.Motor, nil
}

// Dials returns number of connection attempts.
func (d *FakeMotorDialer) Dials() int {
	return int(atomic.LoadInt32(&d.dials))
}

// Axis returns last requested axis.
func (d *FakeMotorDialer) Axis() int {
	return int(atomic.LoadInt32(&d.axis))
}
