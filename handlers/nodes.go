package handlers

import (
	"net/http"

	"github.com/andrewpaige1/thoughtcatcher-api/logging"
	"github.com/andrewpaige1/thoughtcatcher-api/services"
	"go.uber.org/zap"
)

// GET /api/nodes/{mindmap_id}
func (h *APIHandler) GetNodesForMindMap(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	nodes, err := h.Nodes.ListForMindMap(r.Context(), userID, r.PathValue("mindmap_id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nodes)
}

// POST /api/nodes
func (h *APIHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req services.NodeInput
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}

	node, err := h.Nodes.Create(r.Context(), userID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

// PUT /api/nodes/{id}
func (h *APIHandler) UpdateNodeByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req services.NodePatch
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}

	node, err := h.Nodes.Update(r.Context(), userID, r.PathValue("id"), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

// DELETE /api/nodes/{id}
func (h *APIHandler) DeleteNodeByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	removed, err := h.Nodes.Delete(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("node subtree deleted", zap.Int("removed", removed))
	writeJSON(w, http.StatusOK, map[string]any{
		"msg":     "Node and its children removed",
		"removed": removed,
	})
}
