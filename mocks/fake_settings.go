//go:build !release

package mocks

import (
	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/plugins/instrument"
	"github.com/fastlab-io/server/providers"
)

// IFakeSettings adds additional capabilities to a fake settings provider.
type IFakeSettings interface {
	AddValidator(providers.IValidatorProvider)
	AddSecurity(providers.ISecurityProvider)
	AddCameraDialer(instrument.CameraDialer)
	AddMotorDialer(instrument.MotorDialer)
	AddCameraSettings(*providers.CameraSettings)
	AddMotorSettings(*providers.MotorSettings)
	AddServerSettings(*providers.ServerSettings)
}

type fakeSettings struct {
	logger         common.ILoggerProvider
	cron           providers.ICronProvider
	validator      providers.IValidatorProvider
	security       providers.ISecurityProvider
	cameraDialer   instrument.CameraDialer
	motorDialer    instrument.MotorDialer
	serverSettings *providers.ServerSettings
	cameraSettings *providers.CameraSettings
	motorSettings  *providers.MotorSettings
	healthSettings *providers.HealthSettings
}

func (f *fakeSettings) SystemLogger() common.ILoggerProvider {
	return f.logger
}

func (f *fakeSettings) PluginLogger(string, string) common.ILoggerProvider {
	return f.logger
}

func (f *fakeSettings) Cron() providers.ICronProvider {
	return f.cron
}

func (f *fakeSettings) Validator() providers.IValidatorProvider {
	if nil != f.validator {
		return f.validator
	}

	return FakeNewValidator(true)
}

func (f *fakeSettings) Security() providers.ISecurityProvider {
	if nil != f.security {
		return f.security
	}

	return FakeNewSecurityProvider(false, true)
}

func (f *fakeSettings) ServerSettings() *providers.ServerSettings {
	if nil != f.serverSettings {
		return f.serverSettings
	}

	return &providers.ServerSettings{
		Port:           9999,
		AllowedOrigins: []string{"*"},
	}
}

func (f *fakeSettings) CameraSettings() *providers.CameraSettings {
	if nil != f.cameraSettings {
		return f.cameraSettings
	}

	return &providers.CameraSettings{
		Host:        "localhost",
		Port:        7100,
		JpegQuality: 90,
	}
}

func (f *fakeSettings) MotorSettings() *providers.MotorSettings {
	if nil != f.motorSettings {
		return f.motorSettings
	}

	return &providers.MotorSettings{
		Host:           "localhost",
		Port:           7200,
		Axis:           1,
		ConnectTimeout: 10,
	}
}

func (f *fakeSettings) HealthSettings() *providers.HealthSettings {
	return f.healthSettings
}

func (f *fakeSettings) CameraDialer() instrument.CameraDialer {
	return f.cameraDialer
}

func (f *fakeSettings) MotorDialer() instrument.MotorDialer {
	return f.motorDialer
}

func (f *fakeSettings) AddValidator(v providers.IValidatorProvider) {
	f.validator = v
}

func (f *fakeSettings) AddSecurity(s providers.ISecurityProvider) {
	f.security = s
}

func (f *fakeSettings) AddCameraDialer(d instrument.CameraDialer) {
	f.cameraDialer = d
}

func (f *fakeSettings) AddMotorDialer(d instrument.MotorDialer) {
	f.motorDialer = d
}

func (f *fakeSettings) AddCameraSettings(s *providers.CameraSettings) {
	f.cameraSettings = s
}

func (f *fakeSettings) AddMotorSettings(s *providers.MotorSettings) {
	f.motorSettings = s
}

func (f *fakeSettings) AddServerSettings(s *providers.ServerSettings) {
	f.serverSettings = s
}

// FakeNewSettings creates a new fake settings provider.
func FakeNewSettings(logCallback func(string)) providers.ISettingsProvider {
	return &fakeSettings{
		logger:         FakeNewLogger(logCallback),
		cron:           FakeNewCron(),
		healthSettings: &providers.HealthSettings{Schedule: "@every 30s"},
	}
}
