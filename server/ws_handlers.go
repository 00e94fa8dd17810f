package server

import (
	"net"
	"net/http"
	"sync"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/systems/camera"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	// Close frame payload limit without the status code.
	maxCloseReason = 123
	// Time given to a single frame write.
	frameWriteTimeout = 10 * time.Second
	// Time given to the client to acknowledge close frame.
	closeAckTimeout = time.Second
)

// Handles camera stream WS upgrade request.
func (s *FastLabServer) handleCameraStream(writer http.ResponseWriter, request *http.Request) {
	usr := getContextUser(request)
	conn, err := s.wsSettings.Upgrade(writer, request, nil)
	if err != nil {
		s.Logger.Error("Failed to establish a WS connection", err, common.LogUserNameToken, usr,
			common.LogSystemToken, logSystem)
		return
	}

	id := s.Sessions.Open(request.RemoteAddr)
	defer s.Sessions.Close(id)

	sink := newWSSink(conn)
	defer sink.close()

	state := s.Camera.Stream(s.ctx, sink)
	s.Logger.Debug("Camera stream finished", common.LogSessionToken, id, common.LogUserNameToken, usr,
		common.LogValueToken, state.String(), common.LogSystemToken, logSystem)
}

// Frames sink backed by WS connection.
type wsSink struct {
	sync.Mutex
	conn      *websocket.Conn
	done      chan struct{}
	closeSent bool
}

// Constructs a new sink and starts watching for client messages.
func newWSSink(conn *websocket.Conn) *wsSink {
	s := &wsSink{
		conn: conn,
		done: make(chan struct{}),
	}

	go s.read()
	return s
}

// Drains client messages until connection is gone.
func (s *wsSink) read() {
	defer close(s.done)
	for {
		if _, _, err := s.conn.NextReader(); err != nil {
			return
		}
	}
}

// Done is closed once client went away.
func (s *wsSink) Done() <-chan struct{} {
	return s.done
}

// SendFrame sends JPEG as a binary message.
func (s *wsSink) SendFrame(data []byte) error {
	select {
	case <-s.done:
		return &camera.ErrPeerDisconnected{}
	default:
	}

	s.Lock()
	defer s.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(frameWriteTimeout)) // nolint: gosec, errcheck
	err := s.conn.WriteMessage(websocket.BinaryMessage, data)
	if nil == err {
		return nil
	}

	if s.isPeerGone(err) {
		return &camera.ErrPeerDisconnected{}
	}

	return errors.Wrap(err, "failed to send frame")
}

// CloseWithError sends close frame with internal error code.
func (s *wsSink) CloseWithError(reason string) error {
	s.Lock()
	defer s.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, truncateReason(reason, maxCloseReason))
	err := s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeAckTimeout))
	if err != nil {
		return err
	}

	s.closeSent = true
	return nil
}

// Closes underlying connection and waits for the reader.
func (s *wsSink) close() {
	s.Lock()
	closeSent := s.closeSent
	s.Unlock()

	if closeSent {
		select {
		case <-s.done:
		case <-time.After(closeAckTimeout):
		}
	}

	s.conn.Close() // nolint: gosec, errcheck
	<-s.done
}

// Checks whether write failed because client is gone.
func (s *wsSink) isPeerGone(err error) bool {
	select {
	case <-s.done:
		return true
	default:
	}

	return errors.Is(err, websocket.ErrCloseSent) || errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET)
}

// Truncates close reason on a rune boundary.
func truncateReason(reason string, limit int) string {
	if len(reason) <= limit {
		return reason
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(reason[cut]) {
		cut--
	}

	return reason[:cut]
}
