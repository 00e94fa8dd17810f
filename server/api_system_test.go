package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/fastlab-io/server/mocks"
	"github.com/fastlab-io/server/plugins/instrument"
	"github.com/fastlab-io/server/providers"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests welcome endpoint.
func TestRoot(t *testing.T) {
	env := newTestEnv(t, nil)
	resp, data := env.do(t, http.MethodGet, "/", "", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "Welcome to the Fast Lab IO API", decode(t, data)["message"])
}

// Tests ping endpoint.
func TestPing(t *testing.T) {
	env := newTestEnv(t, nil)
	resp, data := env.do(t, http.MethodGet, "/pub/ping", "", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", decode(t, data)["status"])
	assert.Equal(t, 0, env.cameraDialer.Dials())
}

// Tests unknown routes and methods.
func TestWrongRoutes(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, _ := env.do(t, http.MethodGet, "/camera/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/motor/speed", `{"speed": 1}`, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, 0, env.motorDialer.Dials())
}

// Tests gateway status.
func TestStatus(t *testing.T) {
	env := newTestEnv(t, func(env *testEnv) {
		env.cameraDialer.Err = &instrument.ErrUnsupportedCommand{Name: "connect"}
	})

	resp, data := env.do(t, http.MethodGet, "/api/v1/status", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := &statusResponse{}
	require.NoError(t, json.Unmarshal(data, got))
	assert.Equal(t, 0, got.Streams)
	for _, v := range got.Instruments {
		assert.False(t, v.Reachable, v.Name)
		assert.Equal(t, "not checked yet", v.Problem, v.Name)
	}

	require.NoError(t, env.server.Health.Start())
	env.settings.Cron().(mocks.IFakeCron).Run()

	_, data = env.do(t, http.MethodGet, "/api/v1/status", "", nil)
	got = &statusResponse{}
	require.NoError(t, json.Unmarshal(data, got))

	expected := []*providers.InstrumentStatus{
		{Name: "camera", Address: "localhost:7100", Reachable: false,
			Problem: "Could not connect to camera: command connect is not supported by the instrument"},
		{Name: "motor", Address: "localhost:7200", Reachable: true},
	}

	assert.Empty(t, cmp.Diff(expected, got.Instruments,
		cmpopts.IgnoreFields(providers.InstrumentStatus{}, "CheckedAt")))
	assert.Equal(t, 1, env.motor.Closed())
}

// Tests CORS headers.
func TestCORS(t *testing.T) {
	env := newTestEnv(t, func(env *testEnv) {
		env.settings.(mocks.IFakeSettings).AddServerSettings(&providers.ServerSettings{
			Port:           8000,
			AllowedOrigins: []string{"http://*.lab.local", "[invalid"},
		})
	})

	resp, _ := env.do(t, http.MethodGet, "/", "", map[string]string{"Origin": "http://ui.lab.local"})
	assert.Equal(t, "http://ui.lab.local", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	resp, _ = env.do(t, http.MethodGet, "/", "", map[string]string{"Origin": "http://evil.com"})
	assert.Equal(t, "", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, _ = env.do(t, http.MethodOptions, "/motor/move", "", map[string]string{
		"Origin":                        "http://ui.lab.local",
		"Access-Control-Request-Method": http.MethodPut,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPut)
	assert.Equal(t, 0, env.motorDialer.Dials())
}

// Tests basic authentication.
func TestAuth(t *testing.T) {
	data := []struct {
		method string
		url    string
		body   string
	}{
		{method: http.MethodGet, url: "/camera/frame"},
		{method: http.MethodPut, url: "/camera/exposure", body: `{"exposure_time_us": 1}`},
		{method: http.MethodPut, url: "/motor/move", body: `{"position": 1}`},
		{method: http.MethodGet, url: "/api/v1/status"},
	}

	env := newTestEnv(t, func(env *testEnv) {
		env.settings.(mocks.IFakeSettings).AddSecurity(mocks.FakeNewSecurityProvider(true, false))
	})

	for _, v := range data {
		resp, body := env.do(t, v.method, v.url, v.body, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, v.url)
		assert.Equal(t, `Basic realm="fastlab"`, resp.Header.Get("WWW-Authenticate"), v.url)
		assert.Equal(t, "Not authenticated", decode(t, body)["detail"], v.url)
	}

	assert.Equal(t, 0, env.cameraDialer.Dials())
	assert.Equal(t, 0, env.motorDialer.Dials())

	resp, _ := env.do(t, http.MethodGet, "/pub/ping", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "public api must not be protected")
	resp, _ = env.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Tests authorized access.
func TestAuthAllowed(t *testing.T) {
	env := newTestEnv(t, func(env *testEnv) {
		env.settings.(mocks.IFakeSettings).AddSecurity(mocks.FakeNewSecurityProvider(true, true))
	})

	resp, _ := env.do(t, http.MethodGet, "/motor/position", "", map[string]string{"Authorization": "Basic dGVzdA=="})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Tests recovery from handler panic.
func TestPanicRecovery(t *testing.T) {
	env := newTestEnv(t, func(env *testEnv) {
		env.camera.FrameSource = func(int) ([]*instrument.Frame, error) {
			panic("driver crashed")
		}
	})

	resp, _ := env.do(t, http.MethodGet, "/camera/frame", "", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 1, env.camera.Closed(), "session not released")

	resp, _ = env.do(t, http.MethodGet, "/pub/ping", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
