package providers

import (
	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/plugins/instrument"
)

// ISettingsProvider defines settings loader provider logic.
type ISettingsProvider interface {
	SystemLogger() common.ILoggerProvider
	PluginLogger(system string, provider string) common.ILoggerProvider
	Cron() ICronProvider
	Validator() IValidatorProvider
	Security() ISecurityProvider
	ServerSettings() *ServerSettings
	CameraSettings() *CameraSettings
	MotorSettings() *MotorSettings
	HealthSettings() *HealthSettings
	CameraDialer() instrument.CameraDialer
	MotorDialer() instrument.MotorDialer
}

// ServerSettings has configured data for the HTTP server.
type ServerSettings struct {
	Port           int               `yaml:"port" validate:"required,port" default:"8000"`
	AllowedOrigins []string          `yaml:"allowedOrigins"`
	Users          map[string]string `yaml:"users"`
}

// CameraSettings has configured data for the camera server and frames encoding.
type CameraSettings struct {
	Host        string         `yaml:"host" validate:"required" default:"localhost"`
	Port        int            `yaml:"port" validate:"required,port" default:"7100"`
	JpegQuality int            `yaml:"jpegQuality" validate:"min=1,max=100" default:"90"`
	MaxWidth    int            `yaml:"maxWidth" validate:"gte=0,lte=8192"`
	Stream      StreamSettings `yaml:"stream"`
}

// StreamSettings has configured data for the camera WS stream.
// Zero values disable corresponding limits.
type StreamSettings struct {
	MaxFPS      int `yaml:"maxFps" validate:"gte=0,lte=1000"`
	MinDistance int `yaml:"minDistance" validate:"gte=0,lte=64"`
}

// MotorSettings has configured data for the motor server.
type MotorSettings struct {
	Host           string `yaml:"host" validate:"required" default:"localhost"`
	Port           int    `yaml:"port" validate:"required,port" default:"7200"`
	Axis           int    `yaml:"axis" validate:"gte=1" default:"1"`
	ConnectTimeout int    `yaml:"connectTimeout" validate:"gt=0" default:"10"`
}

// LoggerSettings has configured data for the system logger.
type LoggerSettings struct {
	Provider string `yaml:"provider" validate:"oneof=console json" default:"console"`
	Level    string `yaml:"level" validate:"oneof=debug info warn error" default:"info"`
}

// HealthSettings has configured data for the instruments health check.
type HealthSettings struct {
	Disabled bool   `yaml:"disabled"`
	Schedule string `yaml:"schedule" default:"@every 30s"`
}
