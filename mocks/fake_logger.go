//go:build !release

package mocks

import (
	"strings"
	"sync"
)

// IFakeLogger adds additional capabilities to a fake logger.
type IFakeLogger interface {
	Messages() []string
}

// Fake logger.
type fakeLogger struct {
	sync.Mutex
	callback func(string)
	messages []string
}

// Prints debug level message.
func (p *fakeLogger) Debug(msg string, fields ...string) {
	p.record(msg, fields)
}

// Prints info level message.
func (p *fakeLogger) Info(msg string, fields ...string) {
	p.record(msg, fields)
}

// Prints warning level message.
func (p *fakeLogger) Warn(msg string, fields ...string) {
	p.record(msg, fields)
}

// Prints error level message.
func (p *fakeLogger) Error(msg string, err error, fields ...string) {
	p.record(msg, fields)
}

// Prints fatal level message. Doesn't exit.
func (p *fakeLogger) Fatal(msg string, err error, fields ...string) {
	p.record(msg, fields)
}

// Flush does nothing.
func (p *fakeLogger) Flush() {
}

// Messages returns everything logged so far.
func (p *fakeLogger) Messages() []string {
	p.Lock()
	defer p.Unlock()
	return append([]string{}, p.messages...)
}

// Records message with fields appended, so tests can search both.
func (p *fakeLogger) record(msg string, fields []string) {
	if len(fields) > 0 {
		msg = msg + " " + strings.Join(fields, " ")
	}

	p.Lock()
	p.messages = append(p.messages, msg)
	p.Unlock()

	if p.callback != nil {
		p.callback(msg)
	}
}

// FakeNewLogger creates a fake logger provider.
func FakeNewLogger(callback func(string)) *fakeLogger {
	return &fakeLogger{
		callback: callback,
	}
}
