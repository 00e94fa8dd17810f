package camera

// ErrNoFrame defines empty acquisition.
type ErrNoFrame struct {
}

// Error formats output.
func (*ErrNoFrame) Error() string {
	return "No frames received from camera"
}

// ErrPeerDisconnected defines stream client which went away.
type ErrPeerDisconnected struct {
}

// Error formats output.
func (*ErrPeerDisconnected) Error() string {
	return "stream client disconnected"
}
