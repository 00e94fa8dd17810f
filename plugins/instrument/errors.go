package instrument

import "fmt"

// ErrInvalidFrame defines frame which can't be converted into an image.
type ErrInvalidFrame struct {
	Reason string
}

// Error formats output.
func (e *ErrInvalidFrame) Error() string {
	return fmt.Sprintf("invalid frame: %s", e.Reason)
}

// ErrUnsupportedCommand defines command which connected instrument doesn't provide.
type ErrUnsupportedCommand struct {
	Name string
}

// Error formats output.
func (e *ErrUnsupportedCommand) Error() string {
	return fmt.Sprintf("command %s is not supported by the instrument", e.Name)
}
