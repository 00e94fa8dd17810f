// Package common contains shared definitions available for all systems and instrument plugins.
package common

// ILoggerProvider defines logger provider which will be passed to every system.
// Fields are key/value pairs, e.g. LogSystemToken, "camera".
type ILoggerProvider interface {
	Debug(msg string, fields ...string)
	Info(msg string, fields ...string)
	Warn(msg string, fields ...string)
	Error(msg string, err error, fields ...string)
	Fatal(msg string, err error, fields ...string)
	Flush()
}
