package connection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fastlab-io/server/mocks"
	"github.com/fastlab-io/server/plugins/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getScope(dialer *mocks.FakeCameraDialer, timeout time.Duration) *Scope[instrument.ICamera] {
	return NewScope(&ConstructScope[instrument.ICamera]{
		Instrument: "camera",
		Address:    "localhost:7100",
		Timeout:    timeout,
		Logger:     mocks.FakeNewLogger(nil),
		Dial: func(ctx context.Context) (instrument.ICamera, error) {
			return dialer.Dial(ctx, "localhost", 7100)
		},
	})
}

// Tests that session is released after success.
func TestWithReleasesOnSuccess(t *testing.T) {
	cam := &mocks.FakeCamera{}
	s := getScope(&mocks.FakeCameraDialer{Camera: cam}, 0)

	called := 0
	err := s.With(context.Background(), func(c instrument.ICamera) error {
		called++
		assert.Equal(t, 0, cam.Closed())
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, called)
	assert.Equal(t, 1, cam.Closed())
	assert.Equal(t, "localhost:7100", s.Address())
}

// Tests that session is released after failure.
func TestWithReleasesOnError(t *testing.T) {
	cam := &mocks.FakeCamera{}
	s := getScope(&mocks.FakeCameraDialer{Camera: cam}, 0)

	err := s.With(context.Background(), func(c instrument.ICamera) error {
		return errors.New("call failed")
	})

	assert.EqualError(t, err, "call failed")
	assert.Equal(t, 1, cam.Closed())
}

// Tests that session is released after panic.
func TestWithReleasesOnPanic(t *testing.T) {
	cam := &mocks.FakeCamera{}
	s := getScope(&mocks.FakeCameraDialer{Camera: cam}, 0)

	assert.Panics(t, func() {
		s.With(context.Background(), func(c instrument.ICamera) error { // nolint: errcheck
			panic("boom")
		})
	})
	assert.Equal(t, 1, cam.Closed())
}

// Tests that a session without Close works.
func TestWithNoCloser(t *testing.T) {
	s := getScope(&mocks.FakeCameraDialer{Camera: &mocks.FakeBareCamera{}}, 0)
	err := s.With(context.Background(), func(c instrument.ICamera) error {
		return nil
	})

	assert.NoError(t, err)
}

// Tests dial failure.
func TestWithDialFailure(t *testing.T) {
	s := getScope(&mocks.FakeCameraDialer{Err: errors.New("connection refused")}, 0)

	called := false
	err := s.With(context.Background(), func(c instrument.ICamera) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
	e, ok := err.(*ErrConnect)
	require.True(t, ok)
	assert.Equal(t, "Could not connect to camera: connection refused", e.Error())
}

// Tests empty session.
func TestWithNoHandle(t *testing.T) {
	s := getScope(&mocks.FakeCameraDialer{}, 0)

	err := s.With(context.Background(), func(c instrument.ICamera) error {
		return nil
	})

	e, ok := err.(*ErrConnect)
	require.True(t, ok)
	_, ok = e.Cause.(*ErrNoHandle)
	assert.True(t, ok)
}

// Tests that connection timeout is reported and late session is released.
func TestWithTimeout(t *testing.T) {
	cam := &mocks.FakeCamera{}
	s := getScope(&mocks.FakeCameraDialer{Camera: cam, Delay: 200 * time.Millisecond}, 20*time.Millisecond)

	start := time.Now()
	err := s.With(context.Background(), func(c instrument.ICamera) error {
		return nil
	})

	assert.True(t, time.Since(start) < 150*time.Millisecond)
	e, ok := err.(*ErrConnectTimeout)
	require.True(t, ok)
	assert.Equal(t, "camera", e.Instrument)

	assert.Eventually(t, func() bool {
		return cam.Closed() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

// Tests cancelled caller context.
func TestWithCancelledContext(t *testing.T) {
	s := getScope(&mocks.FakeCameraDialer{Camera: &mocks.FakeCamera{}, Delay: 100 * time.Millisecond},
		time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.With(ctx, func(c instrument.ICamera) error {
		return nil
	})

	_, ok := err.(*ErrConnect)
	assert.True(t, ok)
}

// Tests timeout message.
func TestErrConnectTimeoutMessage(t *testing.T) {
	e := &ErrConnectTimeout{Instrument: "motor", Address: "localhost:7200", Timeout: 10 * time.Second}
	assert.Equal(t, "Timeout connecting to motor server on localhost:7200 after 10s. Server might be unresponsive.",
		e.Error())
}
