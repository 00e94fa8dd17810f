//go:build !release

package mocks

import (
	"errors"
	"net/http"
)

type fakeSecurity struct {
	enabled bool
	allow   bool
}

func (f *fakeSecurity) IsEnabled() bool {
	return f.enabled
}

func (f *fakeSecurity) Authorize(http.Header) (string, error) {
	if f.allow {
		return "test", nil
	}

	return "", errors.New("not found")
}

// FakeNewSecurityProvider creates a fake security provider.
func FakeNewSecurityProvider(enabled bool, allow bool) *fakeSecurity {
	return &fakeSecurity{
		enabled: enabled,
		allow:   allow,
	}
}
