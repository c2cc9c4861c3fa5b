package handlers

import (
	"net/http"

	"github.com/andrewpaige1/thoughtcatcher-api/services"
)

// GET /api/mindmaps
func (h *APIHandler) GetMindMaps(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	mindMaps, err := h.MindMaps.List(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mindMaps)
}

// POST /api/mindmaps
func (h *APIHandler) CreateMindMap(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req services.MindMapInput
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}

	mindMap, err := h.MindMaps.Create(r.Context(), userID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mindMap)
}

// GET /api/mindmaps/{id}
func (h *APIHandler) GetMindMapByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	mindMap, err := h.MindMaps.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mindMap)
}

// PUT /api/mindmaps/{id}
func (h *APIHandler) UpdateMindMapByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req services.MindMapPatch
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}

	mindMap, err := h.MindMaps.Update(r.Context(), userID, r.PathValue("id"), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mindMap)
}

// DELETE /api/mindmaps/{id}
func (h *APIHandler) DeleteMindMapByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.MindMaps.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Msg: "Mind map removed"})
}
