package settings

import "fmt"

// ErrInvalidSettings defines settings which failed validation.
type ErrInvalidSettings struct {
	File string
}

// Error formats output.
func (e *ErrInvalidSettings) Error() string {
	return fmt.Sprintf("settings from %s are invalid", e.File)
}
