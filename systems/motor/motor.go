// Package motor implements motor axis commands.
package motor

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/plugins/instrument"
	"github.com/fastlab-io/server/providers"
	"github.com/fastlab-io/server/systems/connection"
	"github.com/fastlab-io/server/utils"
	"github.com/pkg/errors"
)

const (
	// Instrument name used in messages.
	instrumentName = "motor"
	// Connection timeout used when settings don't have one.
	defaultConnectTimeout = 10 * time.Second
)

// IMotorService defines motor commands.
type IMotorService interface {
	providers.IMotorProvider
	Move(ctx context.Context, position float64) error
	GetPosition(ctx context.Context) (float64, error)
	SetSpeed(ctx context.Context, speed float64) error
}

// ConstructMotor has data required for a new motor service.
type ConstructMotor struct {
	Settings *providers.MotorSettings
	Dialer   instrument.MotorDialer
	Logger   common.ILoggerProvider
}

// Motor service implementation.
type motorService struct {
	scope  *connection.Scope[instrument.IMotor]
	logger common.ILoggerProvider
}

// NewMotorService constructs a new motor service.
func NewMotorService(ctor *ConstructMotor) IMotorService {
	s := ctor.Settings
	timeout := time.Duration(s.ConnectTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	return &motorService{
		scope: connection.NewScope(&connection.ConstructScope[instrument.IMotor]{
			Instrument: instrumentName,
			Address:    fmt.Sprintf("%s:%d", s.Host, s.Port),
			Timeout:    timeout,
			Logger:     ctor.Logger,
			Dial: func(ctx context.Context) (instrument.IMotor, error) {
				return ctor.Dialer(ctx, s.Host, s.Port, s.Axis)
			},
		}),
		logger: ctor.Logger,
	}
}

// WithMotor hands an exclusive motor session to fn.
func (m *motorService) WithMotor(ctx context.Context, fn func(motor instrument.IMotor) error) error {
	return m.scope.With(ctx, fn)
}

// Address returns motor server address.
func (m *motorService) Address() string {
	return m.scope.Address()
}

// Move starts moving the axis.
func (m *motorService) Move(ctx context.Context, position float64) error {
	return m.scope.With(ctx, func(motor instrument.IMotor) error {
		err := motor.Move(position)
		if err != nil {
			m.logger.Error("Failed to move motor", err, common.LogValueToken, utils.FormatFloat(position))
			return errors.Wrap(err, "Could not move motor")
		}

		m.logger.Info("Motor move command sent", common.LogValueToken, utils.FormatFloat(position))
		return nil
	})
}

// GetPosition returns current axis position.
func (m *motorService) GetPosition(ctx context.Context) (float64, error) {
	var position float64
	err := m.scope.With(ctx, func(motor instrument.IMotor) error {
		var err error
		position, err = motor.GetPosition()
		if err != nil {
			m.logger.Error("Failed to get motor position", err)
			return errors.Wrap(err, "Could not get motor position")
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	m.logger.Debug("Motor position retrieved", common.LogValueToken, strconv.FormatFloat(position, 'g', -1, 64))
	return position, nil
}

// SetSpeed updates axis speed.
func (m *motorService) SetSpeed(ctx context.Context, speed float64) error {
	return m.scope.With(ctx, func(motor instrument.IMotor) error {
		err := motor.SetSpeed(speed)
		if err != nil {
			m.logger.Error("Failed to set motor speed", err, common.LogValueToken, utils.FormatFloat(speed))
			return errors.Wrap(err, "Could not set motor speed")
		}

		m.logger.Info("Motor speed updated", common.LogValueToken, utils.FormatFloat(speed))
		return nil
	})
}
