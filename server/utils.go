package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/systems/connection"
	"github.com/pkg/errors"
)

// Error response.
type detailResponse struct {
	Detail interface{} `json:"detail"`
}

// Message response.
type messageResponse struct {
	Message string `json:"message"`
}

// Plain HTTP_200 API response.
func respondOk(writer http.ResponseWriter) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	io.WriteString(writer, `{ "status": "OK" }`) // nolint: gosec, errcheck
}

// Generic API respond.
func respond(writer http.ResponseWriter, data interface{}) {
	respondStatus(writer, http.StatusOK, data)
}

// Responds with a message.
func respondMessage(writer http.ResponseWriter, format string, args ...interface{}) {
	respond(writer, &messageResponse{Message: fmt.Sprintf(format, args...)})
}

// Responds with status and JSON body.
func respondStatus(writer http.ResponseWriter, status int, data interface{}) {
	d, err := json.Marshal(data)
	if err != nil {
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write(d) // nolint: gosec, errcheck
}

// Responds with error detail.
func respondError(writer http.ResponseWriter, status int, detail string) {
	respondStatus(writer, status, &detailResponse{Detail: detail})
}

// Responds with instrument failure.
// Connection problems are reported separately from failed commands.
func respondInstrumentError(writer http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.Cause(err).(type) {
	case *connection.ErrConnect:
		status = http.StatusServiceUnavailable
	case *connection.ErrConnectTimeout:
		status = http.StatusGatewayTimeout
	}

	respondError(writer, status, err.Error())
}

// Return HTTP_UNAUTHORIZED status.
func respondUnAuth(writer http.ResponseWriter) {
	writer.Header().Set("WWW-Authenticate", fmt.Sprintf(`Basic realm="%s"`, authRealm))
	respondError(writer, http.StatusUnauthorized, "Not authenticated")
}

// Logger middleware for the API.
func (s *FastLabServer) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Logger.Debug("REST invocation", common.LogURLToken, r.RequestURI,
			common.LogUserNameToken, getContextUser(r), common.LogSystemToken, logSystem)
		next.ServeHTTP(w, r)
	})
}

// Authz middleware.
func (s *FastLabServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Settings.Security().IsEnabled() {
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.Settings.Security().Authorize(r.Header)
		if err != nil {
			s.Logger.Warn("Unauthorized access attempt", common.LogURLToken, r.RequestURI,
				common.LogSystemToken, logSystem)
			respondUnAuth(w)
			return
		}

		ctx := context.WithValue(r.Context(), ctxtUserName, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Gets current user out of context.
func getContextUser(request *http.Request) string {
	user, ok := request.Context().Value(ctxtUserName).(string)
	if !ok {
		return "anonymous"
	}

	return user
}

// Adapts system logger for the recovery handler.
type recoveryLogger struct {
	logger common.ILoggerProvider
}

// Println logs recovered panic.
func (l *recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("Recovered from panic", errors.New(fmt.Sprint(v...)), common.LogSystemToken, logSystem)
}
