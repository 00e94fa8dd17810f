package simulator

import (
	"math"
	"sync"
	"time"

	"github.com/fastlab-io/server/plugins/instrument"
	"github.com/fastlab-io/server/systems/plico"
)

const (
	// Speed used until a client changes it, units per second.
	defaultSpeed = 1000.0
)

// MotorAxis travels towards the target with configured speed.
type MotorAxis struct {
	sync.Mutex

	now     func() time.Time
	start   float64
	target  float64
	speed   float64
	movedAt time.Time
}

// NewMotorAxis constructs a new simulated axis at zero.
func NewMotorAxis() *MotorAxis {
	return newMotorAxis(time.Now)
}

func newMotorAxis(now func() time.Time) *MotorAxis {
	return &MotorAxis{
		now:     now,
		speed:   defaultSpeed,
		movedAt: now(),
	}
}

// Move starts moving to the target.
func (m *MotorAxis) Move(position float64) error {
	m.Lock()
	defer m.Unlock()

	m.start = m.position()
	m.target = position
	m.movedAt = m.now()
	return nil
}

// GetPosition returns current position.
func (m *MotorAxis) GetPosition() (float64, error) {
	m.Lock()
	defer m.Unlock()
	return m.position(), nil
}

// SetSpeed updates speed. Zero speed stops the axis.
func (m *MotorAxis) SetSpeed(speed float64) error {
	if speed < 0 {
		return &ErrOutOfRange{Name: "speed", Value: speed}
	}

	m.Lock()
	defer m.Unlock()

	m.start = m.position()
	m.movedAt = m.now()
	m.speed = speed
	return nil
}

// Calculates position. Must be called under lock.
func (m *MotorAxis) position() float64 {
	distance := m.target - m.start
	travelled := m.speed * m.now().Sub(m.movedAt).Seconds()
	if travelled >= math.Abs(distance) {
		return m.target
	}

	return m.start + math.Copysign(travelled, distance)
}

// NewMotor constructs a motor with the given number of axes, numbered from 1.
func NewMotor(axes int) plico.MotorAxes {
	m := make(plico.MotorAxes, axes)
	for ii := 1; ii <= axes; ii++ {
		m[ii] = NewMotorAxis()
	}

	return m
}

var _ instrument.IMotor = (*MotorAxis)(nil)
var _ instrument.IGainSetter = (*Camera)(nil)
