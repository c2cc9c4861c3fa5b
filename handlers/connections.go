package handlers

import (
	"net/http"

	"github.com/andrewpaige1/thoughtcatcher-api/services"
)

// GET /api/connections/{mindmap_id}
func (h *APIHandler) GetConnectionsForMindMap(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	connections, err := h.Connections.ListForMindMap(r.Context(), userID, r.PathValue("mindmap_id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, connections)
}

// POST /api/connections
func (h *APIHandler) CreateConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req services.ConnectionInput
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}

	connection, err := h.Connections.Create(r.Context(), userID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, connection)
}

// PUT /api/connections/{id}
func (h *APIHandler) UpdateConnectionByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req services.ConnectionPatch
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}

	connection, err := h.Connections.Update(r.Context(), userID, r.PathValue("id"), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, connection)
}

// DELETE /api/connections/{id}
func (h *APIHandler) DeleteConnectionByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.Connections.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Msg: "Connection removed"})
}
