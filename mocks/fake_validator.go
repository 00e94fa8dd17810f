//go:build !release

package mocks

import (
	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/providers"
)

type fakeValidator struct {
	success bool
}

func (f *fakeValidator) SetLogger(logger common.ILoggerProvider) {
}

func (f *fakeValidator) Validate(interface{}) bool {
	return f.success
}

func (f *fakeValidator) ValidateRequest(interface{}) []*providers.FieldError {
	if f.success {
		return nil
	}

	return []*providers.FieldError{{Field: "fake", Tag: "fake"}}
}

// FakeNewValidator creates a new fake validation provider.
func FakeNewValidator(success bool) providers.IValidatorProvider {
	return &fakeValidator{
		success: success,
	}
}
