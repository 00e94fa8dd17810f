package server

import (
	"net/http"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/utils"
)

// Exposure update request.
type exposureRequest struct {
	ExposureTimeUs *float64 `json:"exposure_time_us" validate:"required,gt=0"`
}

// Gain update request.
type gainRequest struct {
	Gain *float64 `json:"gain" validate:"required,gte=0"`
}

// Returns a single camera frame as JPEG.
func (s *FastLabServer) getFrame(writer http.ResponseWriter, request *http.Request) {
	data, err := s.Camera.ReadFrame(request.Context())
	if err != nil {
		respondInstrumentError(writer, err)
		return
	}

	writer.Header().Set("Content-Type", "image/jpeg")
	writer.WriteHeader(http.StatusOK)
	writer.Write(data) // nolint: gosec, errcheck
}

// Updates camera exposure time.
func (s *FastLabServer) setExposure(writer http.ResponseWriter, request *http.Request) {
	req := &exposureRequest{}
	if !s.decodeRequest(writer, request, req) {
		return
	}

	err := s.Camera.SetExposureTime(request.Context(), *req.ExposureTimeUs)
	if err != nil {
		respondInstrumentError(writer, err)
		return
	}

	s.Logger.Info("Camera exposure changed", common.LogUserNameToken, getContextUser(request),
		common.LogValueToken, utils.FormatFloat(*req.ExposureTimeUs), common.LogSystemToken, logSystem)
	respondMessage(writer, "Exposure time set to %s us", utils.FormatFloat(*req.ExposureTimeUs))
}

// Updates camera gain.
func (s *FastLabServer) setGain(writer http.ResponseWriter, request *http.Request) {
	req := &gainRequest{}
	if !s.decodeRequest(writer, request, req) {
		return
	}

	err := s.Camera.SetGain(request.Context(), *req.Gain)
	if err != nil {
		respondInstrumentError(writer, err)
		return
	}

	respondMessage(writer, "Gain set to %s", utils.FormatFloat(*req.Gain))
}
