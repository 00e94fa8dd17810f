package server

import (
	"net/http"

	"github.com/fastlab-io/server/providers"
)

// Gateway status response.
type statusResponse struct {
	Instruments []*providers.InstrumentStatus `json:"instruments"`
	Streams     int                           `json:"streams"`
	Sessions    []*providers.StreamSession    `json:"sessions"`
}

// Returns welcome message.
func (s *FastLabServer) root(writer http.ResponseWriter, _ *http.Request) {
	respond(writer, &messageResponse{Message: welcomeMessage})
}

// Returns ping response.
func (s *FastLabServer) ping(writer http.ResponseWriter, _ *http.Request) {
	respondOk(writer)
}

// Returns instruments reachability and active streams.
func (s *FastLabServer) getStatus(writer http.ResponseWriter, _ *http.Request) {
	sessions := s.Sessions.List()
	respond(writer, &statusResponse{
		Instruments: s.Health.Status(),
		Streams:     len(sessions),
		Sessions:    sessions,
	})
}
