package logger

import "fmt"

// ErrUnknownProvider defines unknown logger provider error.
type ErrUnknownProvider struct {
	Name string
}

// Error formats output.
func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("logger provider %s is unknown", e.Name)
}
