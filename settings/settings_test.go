package settings

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/fastlab-io/server/mocks"
	"github.com/fastlab-io/server/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	file := filepath.Join(t.TempDir(), "fastlab.yaml")
	require.NoError(t, ioutil.WriteFile(file, []byte(data), os.ModePerm))
	return file
}

func loadTest(t *testing.T, options *StartUpOptions) (*settingsProvider, error) {
	defer func() { utils.ConfigDir = "" }()
	return load(options, mocks.FakeNewLogger(nil))
}

// Tests default settings.
func TestDefaults(t *testing.T) {
	log := mocks.FakeNewLogger(nil)
	options := &StartUpOptions{Config: filepath.Join(t.TempDir(), "missing.yaml")}
	s, err := load(options, log)
	utils.ConfigDir = ""
	require.NoError(t, err)

	assert.Contains(t, log.Messages()[0], "Settings are not defined, using the default ones")
	assert.Equal(t, 8000, s.ServerSettings().Port)
	assert.Equal(t, "localhost", s.CameraSettings().Host)
	assert.Equal(t, 7100, s.CameraSettings().Port)
	assert.Equal(t, 90, s.CameraSettings().JpegQuality)
	assert.Equal(t, 0, s.CameraSettings().Stream.MaxFPS)
	assert.Equal(t, 7200, s.MotorSettings().Port)
	assert.Equal(t, 1, s.MotorSettings().Axis)
	assert.Equal(t, 10, s.MotorSettings().ConnectTimeout)
	assert.Equal(t, "@every 30s", s.HealthSettings().Schedule)
	assert.False(t, s.Security().IsEnabled())
	assert.NotNil(t, s.CameraDialer())
	assert.NotNil(t, s.MotorDialer())
	assert.NotNil(t, s.Validator())
	assert.NotNil(t, s.SystemLogger())
	assert.NotNil(t, s.PluginLogger("camera", "plico"))
}

// Tests config file.
func TestConfigFile(t *testing.T) {
	os.Setenv("FASTLAB_TEST_CAMERA_HOST", "10.0.0.5") // nolint: errcheck
	defer os.Unsetenv("FASTLAB_TEST_CAMERA_HOST")     // nolint: errcheck

	file := writeConfig(t, `
server:
  port: 9000
  allowedOrigins:
    - "http://*.lab.local"
camera:
  host: {{ env "FASTLAB_TEST_CAMERA_HOST" }}
  port: 7101
  jpegQuality: 75
  maxWidth: 640
  stream:
    maxFps: 25
    minDistance: 3
motor:
  host: stage.lab.local
  axis: 2
  connectTimeout: 5
logger:
  provider: json
  level: debug
health:
  disabled: true
`)

	s, err := loadTest(t, &StartUpOptions{Config: file})
	require.NoError(t, err)

	assert.Equal(t, 9000, s.ServerSettings().Port)
	assert.Equal(t, []string{"http://*.lab.local"}, s.ServerSettings().AllowedOrigins)
	assert.Equal(t, "10.0.0.5", s.CameraSettings().Host)
	assert.Equal(t, 7101, s.CameraSettings().Port)
	assert.Equal(t, 75, s.CameraSettings().JpegQuality)
	assert.Equal(t, 640, s.CameraSettings().MaxWidth)
	assert.Equal(t, 25, s.CameraSettings().Stream.MaxFPS)
	assert.Equal(t, 3, s.CameraSettings().Stream.MinDistance)
	assert.Equal(t, "stage.lab.local", s.MotorSettings().Host)
	assert.Equal(t, 7200, s.MotorSettings().Port)
	assert.Equal(t, 2, s.MotorSettings().Axis)
	assert.Equal(t, 5, s.MotorSettings().ConnectTimeout)
	assert.True(t, s.HealthSettings().Disabled)
}

// Tests command line overrides.
func TestOptionsOverride(t *testing.T) {
	file := writeConfig(t, `
server:
  port: 9000
logger:
  provider: json
`)

	s, err := loadTest(t, &StartUpOptions{Config: file, Port: 9100, Logger: "Console"})
	require.NoError(t, err)
	assert.Equal(t, 9100, s.ServerSettings().Port)
	assert.Equal(t, "console", s.file.Logger.Provider)
}

// Tests invalid settings.
func TestInvalidSettings(t *testing.T) {
	data := []string{
		"server:\n  port: 70000\n",
		"camera:\n  jpegQuality: 101\n",
		"motor:\n  axis: -1\n",
		"logger:\n  provider: syslog\n",
		"camera:\n  stream:\n    maxFps: -5\n",
	}

	for _, v := range data {
		_, err := loadTest(t, &StartUpOptions{Config: writeConfig(t, v)})
		require.Error(t, err, v)
		_, ok := err.(*ErrInvalidSettings)
		assert.True(t, ok, v)
	}
}

// Tests broken files.
func TestBrokenFile(t *testing.T) {
	data := []string{
		"server: [port",
		"camera:\n  host: {{ env }\n",
		"server:\n  port: abc\n",
	}

	for _, v := range data {
		_, err := loadTest(t, &StartUpOptions{Config: writeConfig(t, v)})
		assert.Error(t, err, v)
	}
}

// Tests users from settings.
func TestSecurityUsers(t *testing.T) {
	file := writeConfig(t, `
server:
  users:
    operator: "$2a$04$D5ZCsPPNJFoqXeDxXxZFquzXGk7/tnqk0uW2zeNFYm.vMNvTsOsr6"
`)

	s, err := loadTest(t, &StartUpOptions{Config: file})
	require.NoError(t, err)
	assert.True(t, s.Security().IsEnabled())
}
