package server

import (
	"net/http"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/utils"
)

// Move request.
type moveRequest struct {
	Position *float64 `json:"position" validate:"required"`
}

// Speed update request.
type speedRequest struct {
	Speed *float64 `json:"speed" validate:"required,gte=0"`
}

// Position response.
type positionResponse struct {
	Position float64 `json:"position"`
}

// Starts moving the motor to the requested position.
func (s *FastLabServer) moveMotor(writer http.ResponseWriter, request *http.Request) {
	req := &moveRequest{}
	if !s.decodeRequest(writer, request, req) {
		return
	}

	err := s.Motor.Move(request.Context(), *req.Position)
	if err != nil {
		respondInstrumentError(writer, err)
		return
	}

	s.Logger.Info("Motor move requested", common.LogUserNameToken, getContextUser(request),
		common.LogValueToken, utils.FormatFloat(*req.Position), common.LogSystemToken, logSystem)
	respondMessage(writer, "Motor moving to position: %s", utils.FormatFloat(*req.Position))
}

// Returns current motor position.
func (s *FastLabServer) getMotorPosition(writer http.ResponseWriter, request *http.Request) {
	position, err := s.Motor.GetPosition(request.Context())
	if err != nil {
		respondInstrumentError(writer, err)
		return
	}

	respond(writer, &positionResponse{Position: position})
}

// Updates motor speed.
func (s *FastLabServer) setMotorSpeed(writer http.ResponseWriter, request *http.Request) {
	req := &speedRequest{}
	if !s.decodeRequest(writer, request, req) {
		return
	}

	err := s.Motor.SetSpeed(request.Context(), *req.Speed)
	if err != nil {
		respondInstrumentError(writer, err)
		return
	}

	respondMessage(writer, "Motor speed set to: %s", utils.FormatFloat(*req.Speed))
}
