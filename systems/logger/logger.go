// Package logger provides system logger implementations.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/fastlab-io/server/plugins/common"
)

const (
	// ProviderConsole describes coloured human readable output.
	ProviderConsole = "console"
	// ProviderJSON describes structured output.
	ProviderJSON = "json"
)

// LogLevel represents minimal level written by logger.
type LogLevel int

const (
	// Debug describes debug log level.
	Debug LogLevel = iota
	// Info describes info log level.
	Info
	// Warning describes warn log level.
	Warning
	// Error describes error log level.
	Error
)

// ConstructLogger has data required for a new logger.
type ConstructLogger struct {
	Provider string
	Level    string
	Output   io.Writer
	Exit     func(int)
}

// NewLoggerProvider constructs a new logger.
func NewLoggerProvider(ctor *ConstructLogger) (common.ILoggerProvider, error) {
	out := ctor.Output
	if nil == out {
		out = os.Stdout
	}

	exit := ctor.Exit
	if nil == exit {
		exit = os.Exit
	}

	level := getLogLevel(ctor.Level)

	switch strings.ToLower(ctor.Provider) {
	case "", ProviderConsole:
		return newConsoleLogger(out, level, exit), nil
	case ProviderJSON:
		return newJSONLogger(out, level, exit), nil
	}

	return nil, &ErrUnknownProvider{Name: ctor.Provider}
}

// Transforms configured level into actual value.
func getLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug", "dbg":
		return Debug
	case "warning", "warn":
		return Warning
	case "error", "err":
		return Error
	default:
		return Info
	}
}

// Helper method to add generic fields to the output.
func withFields(fields ...string) map[string]string {
	fLen := len(fields)
	result := make(map[string]string, int(fLen/2))
	for ii := 0; ii < fLen; ii += 2 {
		if ii+1 >= fLen {
			break
		}

		result[fields[ii]] = fields[ii+1]
	}

	return result
}

// Appends error to the fields list.
func withError(fields []string, err error) []string {
	if nil == err {
		return fields
	}

	return append(fields, common.LogErrorToken, err.Error())
}
