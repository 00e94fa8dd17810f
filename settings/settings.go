package settings

import (
	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/plugins/instrument"
	"github.com/fastlab-io/server/providers"
	"github.com/fastlab-io/server/systems/logger"
)

// SystemLogger returns default system logger.
func (s *settingsProvider) SystemLogger() common.ILoggerProvider {
	return s.logger
}

// PluginLogger returns logger specifically for a subsystem provider.
func (s *settingsProvider) PluginLogger(system string, provider string) common.ILoggerProvider {
	return logger.NewPluginLogger(&logger.ConstructPluginLogger{
		SystemLogger: s.logger,
		System:       system,
		Provider:     provider,
	})
}

// Cron returns system's cron provider.
func (s *settingsProvider) Cron() providers.ICronProvider {
	return s.cron
}

// Validator returns yaml validator provider.
func (s *settingsProvider) Validator() providers.IValidatorProvider {
	return s.validator
}

// Security returns a security provider.
func (s *settingsProvider) Security() providers.ISecurityProvider {
	return s.securityProvider
}

// ServerSettings returns HTTP server settings.
func (s *settingsProvider) ServerSettings() *providers.ServerSettings {
	return &s.file.Server
}

// CameraSettings returns camera settings.
func (s *settingsProvider) CameraSettings() *providers.CameraSettings {
	return &s.file.Camera
}

// MotorSettings returns motor settings.
func (s *settingsProvider) MotorSettings() *providers.MotorSettings {
	return &s.file.Motor
}

// HealthSettings returns health check settings.
func (s *settingsProvider) HealthSettings() *providers.HealthSettings {
	return &s.file.Health
}

// CameraDialer returns camera client.
func (s *settingsProvider) CameraDialer() instrument.CameraDialer {
	return s.cameraDialer
}

// MotorDialer returns motor client.
func (s *settingsProvider) MotorDialer() instrument.MotorDialer {
	return s.motorDialer
}
