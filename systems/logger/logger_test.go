package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fastlab-io/server/mocks"
	"github.com/fastlab-io/server/plugins/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests log level parsing.
func TestGetLogLevel(t *testing.T) {
	data := map[string]LogLevel{
		"debug":   Debug,
		"DBG":     Debug,
		"info":    Info,
		"":        Info,
		"warning": Warning,
		"warn":    Warning,
		"error":   Error,
		"err":     Error,
		"wrong":   Info,
	}

	for k, v := range data {
		assert.Equal(t, v, getLogLevel(k), k)
	}
}

// Tests fields conversion.
func TestWithFields(t *testing.T) {
	f := withFields("k1", "v1", "k2", "v2", "dangling")
	assert.Equal(t, map[string]string{"k1": "v1", "k2": "v2"}, f)
}

// Tests unknown provider.
func TestUnknownProvider(t *testing.T) {
	_, err := NewLoggerProvider(&ConstructLogger{Provider: "syslog"})
	require.Error(t, err)
	_, ok := err.(*ErrUnknownProvider)
	assert.True(t, ok)
}

// Tests console output and level filtering.
func TestConsoleLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := NewLoggerProvider(&ConstructLogger{Provider: ProviderConsole, Level: "warn", Output: buf})
	require.NoError(t, err)

	l.Debug("debug message")
	l.Info("info message")
	assert.Equal(t, 0, buf.Len())

	l.Warn("warn message", common.LogSystemToken, "camera")
	out := buf.String()
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "system: camera")

	buf.Reset()
	l.Error("error message", errors.New("boom"))
	assert.Contains(t, buf.String(), "error: boom")
}

// Tests fatal calls exit.
func TestConsoleFatal(t *testing.T) {
	code := -1
	l, _ := NewLoggerProvider(&ConstructLogger{Output: &bytes.Buffer{}, Exit: func(c int) { code = c }})
	l.Fatal("fatal", errors.New("boom"))
	assert.Equal(t, 1, code)
}

// Tests json output.
func TestJSONLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := NewLoggerProvider(&ConstructLogger{Provider: "JSON", Level: "info", Output: buf})
	require.NoError(t, err)

	l.Debug("hidden")
	assert.Equal(t, 0, buf.Len())

	l.Error("failed", errors.New("boom"), common.LogAxisToken, "1")
	line := strings.TrimSpace(buf.String())

	data := make(map[string]string)
	require.NoError(t, json.Unmarshal([]byte(line), &data))
	assert.Equal(t, "failed", data["msg"])
	assert.Equal(t, "error", data["level"])
	assert.Equal(t, "boom", data[common.LogErrorToken])
	assert.Equal(t, "1", data[common.LogAxisToken])
}

// Tests json fatal exit.
func TestJSONFatal(t *testing.T) {
	code := -1
	l, _ := NewLoggerProvider(&ConstructLogger{Provider: ProviderJSON, Output: &bytes.Buffer{},
		Exit: func(c int) { code = c }})
	l.Fatal("fatal", nil)
	assert.Equal(t, 1, code)
}

// Tests that plugin logger adds system and provider.
func TestPluginLogger(t *testing.T) {
	sys := mocks.FakeNewLogger(nil)
	l := NewPluginLogger(&ConstructPluginLogger{
		SystemLogger: sys,
		System:       "motor",
		Provider:     "plico",
	})

	l.Info("test", common.LogAxisToken, "2")
	l.Error("test error", errors.New("boom"))

	msgs := sys.Messages()
	require.Len(t, msgs, 2)
	for _, v := range msgs {
		assert.Contains(t, v, "motor")
		assert.Contains(t, v, "plico")
	}
}
