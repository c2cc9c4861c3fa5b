package handlers

import (
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/andrewpaige1/thoughtcatcher-api/logging"
	"github.com/andrewpaige1/thoughtcatcher-api/services"
	"go.uber.org/zap"
)

type logsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// GET /api/logs
func (h *APIHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	level := r.URL.Query().Get("level")
	if level == "" {
		level = "all"
	}
	if level != "all" && !slices.Contains(logging.Levels, level) {
		h.fail(w, r, &services.ValidationError{Errors: []services.FieldError{{Msg: "Unknown log level", Param: "level"}}})
		return
	}
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.fail(w, r, &services.ValidationError{Errors: []services.FieldError{{Msg: "Limit must be a positive integer", Param: "limit"}}})
			return
		}
		limit = n
	}

	logging.FromContext(r.Context()).Info("log retrieval requested", zap.String("level", level), zap.Int("limit", limit))
	page, err := h.Logs.Recent(level, limit)
	if err != nil {
		h.logsFail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, logsResponse{Success: true, Data: page})
}

// GET /api/logs/files
func (h *APIHandler) GetLogFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.Logs.Files()
	if err != nil {
		h.logsFail(w, r, err)
		return
	}
	if files == nil {
		files = []logging.FileInfo{}
	}
	writeJSON(w, http.StatusOK, logsResponse{Success: true, Data: map[string]any{
		"files":     files,
		"directory": h.Logs.Dir,
	}})
}

// DELETE /api/logs
func (h *APIHandler) DeleteLogs(w http.ResponseWriter, r *http.Request) {
	req := struct {
		KeepCount *int `json:"keepCount"`
	}{}
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	keep := 5
	if req.KeepCount != nil {
		keep = *req.KeepCount
	}

	removed, err := h.Logs.Prune(keep)
	if err != nil {
		h.logsFail(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("old log files removed", zap.Strings("files", removed))
	writeJSON(w, http.StatusOK, logsResponse{Success: true, Data: map[string]any{
		"deleted": removed,
		"kept":    keep,
	}})
}

func (h *APIHandler) logsFail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, logging.ErrNoLogDir):
		writeJSON(w, http.StatusNotFound, logsResponse{Message: "Logs directory not found"})
	case errors.Is(err, logging.ErrNoLogFiles):
		writeJSON(w, http.StatusNotFound, logsResponse{Message: "No log files found"})
	default:
		logging.FromContext(r.Context()).Error("error reading logs", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, logsResponse{Message: "Failed to retrieve logs"})
	}
}
