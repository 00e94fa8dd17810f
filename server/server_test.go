package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fastlab-io/server/mocks"
	"github.com/fastlab-io/server/providers"
	"github.com/fastlab-io/server/utils"
	"github.com/stretchr/testify/require"
)

// Test environment with fake instruments.
type testEnv struct {
	settings     providers.ISettingsProvider
	camera       *mocks.FakeCamera
	cameraDialer *mocks.FakeCameraDialer
	motor        *mocks.FakeMotor
	motorDialer  *mocks.FakeMotorDialer
	server       *FastLabServer
	ts           *httptest.Server
}

// Prepares settings, configure is invoked before server is constructed.
func newTestEnv(t *testing.T, configure func(env *testEnv)) *testEnv {
	env := &testEnv{
		settings: mocks.FakeNewSettings(nil),
		camera:   &mocks.FakeCamera{},
		motor:    &mocks.FakeMotor{Position: 42.5},
	}

	env.cameraDialer = &mocks.FakeCameraDialer{Camera: env.camera}
	env.motorDialer = &mocks.FakeMotorDialer{Motor: env.motor}

	fs := env.settings.(mocks.IFakeSettings)
	fs.AddValidator(utils.NewValidator(env.settings.SystemLogger()))
	fs.AddCameraDialer(env.cameraDialer.Dial)
	fs.AddMotorDialer(env.motorDialer.Dial)

	if nil != configure {
		configure(env)
	}

	srv, err := NewServer(env.settings)
	require.NoError(t, err, "server failed")

	env.server = srv
	env.ts = httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		srv.cancel()
		env.ts.Close()
	})

	return env
}

// Invokes API and returns status with body.
func (e *testEnv) do(t *testing.T, method string, url string, body string,
	headers map[string]string) (*http.Response, []byte) {
	var reader io.Reader
	if "" != body {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, e.ts.URL+url, reader)
	require.NoError(t, err)
	if "" != body {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "request failed")
	defer resp.Body.Close() // nolint: errcheck

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

// Decodes JSON response into a generic map.
func decode(t *testing.T, data []byte) map[string]interface{} {
	result := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(data, &result), string(data))
	return result
}
