package instrument

import "context"

// IMotor defines connected motor axis session.
// Handle may also implement io.Closer, which is used for releasing it.
type IMotor interface {
	// Move starts moving axis to the absolute position.
	Move(position float64) error
	// GetPosition returns current axis position.
	GetPosition() (float64, error)
	// SetSpeed updates axis speed.
	SetSpeed(speed float64) error
}

// MotorDialer opens a new motor session bound to the axis.
type MotorDialer func(ctx context.Context, host string, port int, axis int) (IMotor, error)
