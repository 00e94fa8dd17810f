package providers

import "github.com/fastlab-io/server/plugins/common"

// IValidatorProvider defines yaml and request structures validator logic.
type IValidatorProvider interface {
	SetLogger(logger common.ILoggerProvider)
	Validate(interface{}) bool
	ValidateRequest(interface{}) []*FieldError
}

// FieldError describes single failed validation rule.
type FieldError struct {
	Field string
	Tag   string
	Param string
	Value interface{}
}
