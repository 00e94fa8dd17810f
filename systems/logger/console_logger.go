package logger

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fatih/color"
)

// Default console logger.
type consoleLogger struct {
	sync.Mutex
	out   io.Writer
	level LogLevel
	exit  func(int)
}

// Constructs a new console logger.
func newConsoleLogger(out io.Writer, level LogLevel, exit func(int)) common.ILoggerProvider {
	return &consoleLogger{
		out:   out,
		level: level,
		exit:  exit,
	}
}

// NewConsoleLogger constructs a new console logger with default settings.
// It's used before configuration is loaded.
func NewConsoleLogger() common.ILoggerProvider {
	l, _ := NewLoggerProvider(&ConstructLogger{Provider: ProviderConsole})
	return l
}

// Debug prints debug level message.
func (p *consoleLogger) Debug(msg string, fields ...string) {
	p.output(Debug, msg, withFields(fields...), color.FgCyan)
}

// Info prints info level message.
func (p *consoleLogger) Info(msg string, fields ...string) {
	p.output(Info, msg, withFields(fields...), color.FgGreen)
}

// Warn prints warning level message.
func (p *consoleLogger) Warn(msg string, fields ...string) {
	p.output(Warning, msg, withFields(fields...), color.FgYellow)
}

// Error prints error level message.
func (p *consoleLogger) Error(msg string, err error, fields ...string) {
	p.output(Error, msg, withFields(withError(fields, err)...), color.FgRed)
}

// Fatal prints fatal level message and exits.
func (p *consoleLogger) Fatal(msg string, err error, fields ...string) {
	p.output(Error, msg, withFields(withError(fields, err)...), color.FgRed)
	p.exit(1)
}

// Flush isn't needed for a console logger.
func (p *consoleLogger) Flush() {
}

// Prepares final string.
func (p *consoleLogger) output(level LogLevel, msg string, fields map[string]string, c color.Attribute) {
	if level < p.level {
		return
	}

	newM := fmt.Sprintf("%s   %s", time.Now().Local().Format(time.StampMilli), msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		newM = fmt.Sprintf("%s\n          %s: %s", newM, k, fields[k])
	}

	p.Lock()
	defer p.Unlock()
	//noinspection GoUnhandledErrorResult
	color.New(c).Fprintln(p.out, newM) // nolint: gosec, errcheck
}
