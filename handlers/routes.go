package handlers

import (
	"net/http"

	"github.com/andrewpaige1/thoughtcatcher-api/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type RouterOptions struct {
	// TokenAuth verifies credentials on private routes.
	TokenAuth      func(http.Handler) http.Handler
	AllowedOrigins []string
	Logger         *zap.Logger
}

// NewRouter mounts every API route. Private routes run behind TokenAuth and
// RequireUser; the whole mux is wrapped in CORS, request logging and recovery.
func NewRouter(h *APIHandler, opts RouterOptions) http.Handler {
	private := func(fn http.HandlerFunc) http.Handler {
		return opts.TokenAuth(middleware.RequireUser(fn))
	}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)

	// Users
	mux.HandleFunc("POST /api/users/register", h.Register)
	mux.HandleFunc("POST /api/users/login", h.Login)
	mux.HandleFunc("POST /api/users/forgot-password", h.ForgotPassword)
	mux.HandleFunc("POST /api/users/reset-password/{token}", h.ResetPassword)
	mux.Handle("GET /api/users", private(h.GetUser))
	mux.Handle("PUT /api/users/preferences", private(h.UpdatePreferences))

	// Mind maps
	mux.Handle("GET /api/mindmaps", private(h.GetMindMaps))
	mux.Handle("POST /api/mindmaps", private(h.CreateMindMap))
	mux.Handle("GET /api/mindmaps/{id}", private(h.GetMindMapByID))
	mux.Handle("PUT /api/mindmaps/{id}", private(h.UpdateMindMapByID))
	mux.Handle("DELETE /api/mindmaps/{id}", private(h.DeleteMindMapByID))

	// Nodes
	mux.Handle("GET /api/nodes/{mindmap_id}", private(h.GetNodesForMindMap))
	mux.Handle("POST /api/nodes", private(h.CreateNode))
	mux.Handle("PUT /api/nodes/{id}", private(h.UpdateNodeByID))
	mux.Handle("DELETE /api/nodes/{id}", private(h.DeleteNodeByID))

	// Connections
	mux.Handle("GET /api/connections/{mindmap_id}", private(h.GetConnectionsForMindMap))
	mux.Handle("POST /api/connections", private(h.CreateConnection))
	mux.Handle("PUT /api/connections/{id}", private(h.UpdateConnectionByID))
	mux.Handle("DELETE /api/connections/{id}", private(h.DeleteConnectionByID))

	// Logs
	mux.Handle("GET /api/logs", private(h.GetLogs))
	mux.Handle("GET /api/logs/files", private(h.GetLogFiles))
	mux.Handle("DELETE /api/logs", private(h.DeleteLogs))

	mux.HandleFunc("/", h.NotFound)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "x-auth-token", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(middleware.Recover(mux))

	return middleware.WithRequestLogging(opts.Logger)(corsHandler)
}
