package logger

import (
	"io"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/sirupsen/logrus"
)

// Structured logger.
type jsonLogger struct {
	logger *logrus.Logger
}

// Constructs a new json logger.
func newJSONLogger(out io.Writer, level LogLevel, exit func(int)) common.ILoggerProvider {
	l := logrus.New()
	l.Out = out
	l.Formatter = &logrus.JSONFormatter{}
	l.ExitFunc = exit

	switch level {
	case Debug:
		l.SetLevel(logrus.DebugLevel)
	case Warning:
		l.SetLevel(logrus.WarnLevel)
	case Error:
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}

	return &jsonLogger{logger: l}
}

// Debug sends debug level message.
func (p *jsonLogger) Debug(msg string, fields ...string) {
	p.entry(fields).Debug(msg)
}

// Info sends info level message.
func (p *jsonLogger) Info(msg string, fields ...string) {
	p.entry(fields).Info(msg)
}

// Warn sends warning level message.
func (p *jsonLogger) Warn(msg string, fields ...string) {
	p.entry(fields).Warn(msg)
}

// Error sends error level message.
func (p *jsonLogger) Error(msg string, err error, fields ...string) {
	p.entry(withError(fields, err)).Error(msg)
}

// Fatal sends fatal level message and exits.
func (p *jsonLogger) Fatal(msg string, err error, fields ...string) {
	p.entry(withError(fields, err)).Fatal(msg)
}

// Flush isn't needed, logrus writes synchronously.
func (p *jsonLogger) Flush() {
}

func (p *jsonLogger) entry(fields []string) *logrus.Entry {
	f := logrus.Fields{}
	for k, v := range withFields(fields...) {
		f[k] = v
	}

	return p.logger.WithFields(f)
}
