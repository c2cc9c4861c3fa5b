package handlers

import (
	"net/http"

	"github.com/andrewpaige1/thoughtcatcher-api/logging"
	"github.com/andrewpaige1/thoughtcatcher-api/services"
	"go.uber.org/zap"
)

type tokenResponse struct {
	Token string `json:"token"`
}

// POST /api/users/register
func (h *APIHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterInput
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}

	token, err := h.Users.Register(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("user registered", zap.String("username", req.Username))
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// POST /api/users/login
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginInput
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}

	token, err := h.Users.Login(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// POST /api/users/forgot-password
func (h *APIHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req services.ForgotPasswordInput
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}

	token, err := h.Users.ForgotPassword(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// No mailer is wired up yet, so development builds hand the token back directly
	resp := map[string]string{"msg": "Password reset email sent (email sending is not yet configured)"}
	if h.Development {
		resp["reset_token"] = token
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /api/users/reset-password/{token}
func (h *APIHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req services.ResetPasswordInput
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}

	if err := h.Users.ResetPassword(r.Context(), r.PathValue("token"), req); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Msg: "Password has been reset"})
}

// GET /api/users
func (h *APIHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.Users.Profile(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// PUT /api/users/preferences
func (h *APIHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req services.PreferencesPatch
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}

	user, err := h.Users.UpdatePreferences(r.Context(), userID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
