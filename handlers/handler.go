package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/andrewpaige1/thoughtcatcher-api/logging"
	"github.com/andrewpaige1/thoughtcatcher-api/services"
	"github.com/andrewpaige1/thoughtcatcher-api/utils"
	"go.uber.org/zap"
)

// APIHandler serves the JSON API on top of the domain services.
type APIHandler struct {
	Users       *services.Users
	MindMaps    *services.MindMaps
	Nodes       *services.Nodes
	Connections *services.Connections
	Logs        *logging.Viewer

	// Development exposes error details and reset tokens in responses.
	Development bool
	Started     time.Time
}

type message struct {
	Msg string `json:"msg"`
}

type serverError struct {
	Msg   string `json:"msg"`
	Error string `json:"error,omitempty"`
}

// writeJSON encodes v before writing the status, so an unencodable value
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"msg":"Server Error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func badBody(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string][]services.FieldError{
		"errors": {{Msg: "Invalid request body"}},
	})
}

// userID is only missing if a private route was registered without RequireUser.
func (h *APIHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, message{Msg: "No token, authorization denied"})
	}
	return userID, ok
}

// fail maps a service error onto the HTTP error taxonomy.
func (h *APIHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	var nf *services.NotFoundError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string][]services.FieldError{"errors": verr.Errors})
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, message{Msg: nf.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, message{Msg: err.Error()})
	case errors.Is(err, services.ErrInvalidResetToken):
		writeJSON(w, http.StatusBadRequest, message{Msg: err.Error()})
	case errors.Is(err, services.ErrUnknownEmail):
		writeJSON(w, http.StatusNotFound, message{Msg: err.Error()})
	default:
		logging.FromContext(r.Context()).Error("request failed", zap.Error(err))
		resp := serverError{Msg: "Server Error"}
		if h.Development {
			resp.Error = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, resp)
	}
}
