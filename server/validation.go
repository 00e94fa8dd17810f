package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/providers"
)

// Single validation problem.
type validationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// Decodes and validates request body.
// Returns true if request is valid, otherwise responds with 422.
func (s *FastLabServer) decodeRequest(writer http.ResponseWriter, request *http.Request, v interface{}) bool {
	details := s.validateBody(request, v)
	if 0 == len(details) {
		return true
	}

	loc := details[0].Loc
	s.Logger.Debug("Request validation failed", common.LogURLToken, request.RequestURI,
		common.LogFieldToken, loc[len(loc)-1], common.LogSystemToken, logSystem)
	respondStatus(writer, http.StatusUnprocessableEntity, &detailResponse{Detail: details})
	return false
}

// Converts body problems into validation details.
func (s *FastLabServer) validateBody(request *http.Request, v interface{}) []*validationDetail {
	err := json.NewDecoder(request.Body).Decode(v)
	if err != nil {
		if e, ok := err.(*json.UnmarshalTypeError); ok {
			return []*validationDetail{{
				Loc:  []string{"body", e.Field},
				Msg:  "Input should be a valid number",
				Type: "float_parsing",
			}}
		}

		return []*validationDetail{{
			Loc:  []string{"body"},
			Msg:  "JSON decode error",
			Type: "json_invalid",
		}}
	}

	errs := s.Settings.Validator().ValidateRequest(v)
	result := make([]*validationDetail, 0, len(errs))
	for _, e := range errs {
		result = append(result, fieldDetail(e))
	}

	return result
}

// Describes a single field problem.
func fieldDetail(e *providers.FieldError) *validationDetail {
	d := &validationDetail{
		Loc:  []string{"body", e.Field},
		Type: e.Tag,
	}

	switch e.Tag {
	case "required":
		d.Msg = "Field required"
		d.Type = "missing"
	case "gt":
		d.Msg = fmt.Sprintf("Input should be greater than %s", e.Param)
		d.Type = "greater_than"
	case "gte":
		d.Msg = fmt.Sprintf("Input should be greater than or equal to %s", e.Param)
		d.Type = "greater_than_equal"
	default:
		d.Msg = fmt.Sprintf("Value error, failed on %s", e.Tag)
	}

	return d
}
